/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/packagewjx/student-analyzer/internal/feedback"
	"github.com/packagewjx/student-analyzer/internal/report"
	"github.com/packagewjx/student-analyzer/internal/server"
	"github.com/packagewjx/student-analyzer/internal/store"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	FlagPort          = "port"
	FlagFocusMajor    = "focus-major"
	FlagNumPatterns   = "patterns"
	FlagNumRound      = "round"
	FlagAssetDir      = "asset-dir"
	FlagPassImageURL  = "pass-image-url"
	FlagFailImageURL  = "fail-image-url"
	FlagImageTimeout  = "image-timeout"
	FlagRedisAddr     = "redis-addr"
	FlagRedisDB       = "redis-db"
	FlagCacheTTL      = "cache-ttl"
	FlagHistoryDriver = "history-driver"
	FlagHistoryDSN    = "history-dsn"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "学生成绩分析与预测网站",
	Long: "启动网站，提供项目概述、专业数据分析与期末成绩预测三个页面，以及/api下的JSON接口。\n" +
		"模型文件不存在时将在启动后训练。报表按数据文件内容缓存在内存或redis（通过redis-addr指定）中，\n" +
		"预测记录可保存到mysql或sqlite（通过history-driver指定）。收到SIGINT或SIGTERM后服务器优雅退出。\n",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		config := predictorConfig()
		server, err := server.NewServer(&server.ServerConfig{
			Port:          uint16(viper.GetUint(FlagPort)),
			DatasetFile:   config.DatasetFile,
			ModelFile:     config.ModelFile,
			FeatureFile:   config.FeatureFile,
			FocusMajor:    core.Major(viper.GetString(FlagFocusMajor)),
			NumPatterns:   viper.GetUint(FlagNumPatterns),
			NumRound:      viper.GetUint(FlagNumRound),
			AssetDir:      viper.GetString(FlagAssetDir),
			PassImageURL:  viper.GetString(FlagPassImageURL),
			FailImageURL:  viper.GetString(FlagFailImageURL),
			ImageTimeout:  viper.GetDuration(FlagImageTimeout),
			RedisAddr:     viper.GetString(FlagRedisAddr),
			RedisDB:       viper.GetInt(FlagRedisDB),
			CacheTTL:      viper.GetDuration(FlagCacheTTL),
			HistoryDriver: viper.GetString(FlagHistoryDriver),
			HistoryDSN:    viper.GetString(FlagHistoryDSN),
		})
		if err != nil {
			return err
		}

		return server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().Uint16P(FlagPort, "p", server.DefaultPort,
		"服务端口号")
	serverCmd.Flags().String(FlagFocusMajor, string(report.DefaultFocusMajor),
		"专项分析的专业")
	serverCmd.Flags().UintP(FlagNumPatterns, "c", server.DefaultNumPatterns,
		"学习模式数量")
	serverCmd.Flags().UintP(FlagNumRound, "r", server.DefaultNumRound,
		"聚类迭代次数")
	serverCmd.Flags().String(FlagAssetDir, feedback.DefaultAssetDir,
		"congrats.png与encourage.png所在目录")
	serverCmd.Flags().String(FlagPassImageURL, feedback.DefaultPassImageURL,
		"本地及格图片不存在时使用的网络图片")
	serverCmd.Flags().String(FlagFailImageURL, feedback.DefaultFailImageURL,
		"本地未及格图片不存在时使用的网络图片")
	serverCmd.Flags().Duration(FlagImageTimeout, server.DefaultImageTimeout,
		"获取网络图片的超时时间")
	serverCmd.Flags().String(FlagRedisAddr, "",
		"缓存报表的redis地址，格式为：host:port。若为空，则缓存在内存中")
	serverCmd.Flags().Int(FlagRedisDB, 0,
		"redis数据库编号")
	serverCmd.Flags().Duration(FlagCacheTTL, server.DefaultCacheTTL,
		"redis中报表的过期时间，0为永不过期")
	serverCmd.Flags().String(FlagHistoryDriver, store.DriverNone,
		"保存预测记录的数据库类型，可选值：mysql、sqlite、none")
	serverCmd.Flags().String(FlagHistoryDSN, "",
		"数据库连接字符串。mysql如user:pass@tcp(host:port)/db?charset=utf8mb4&parseTime=True&loc=Local，sqlite为文件路径")
}
