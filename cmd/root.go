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
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/packagewjx/student-analyzer/internal/model"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const EnvPrefix = "STUDENT_ANALYZER"

// 全局参数，同时作为配置文件与环境变量的键
const (
	FlagConfig      = "config"
	FlagDataset     = "dataset"
	FlagModelFile   = "model-file"
	FlagFeatureFile = "feature-file"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "student-analyzer",
	Short: "学生成绩分析与预测系统",
	Long: "读取学生数据文件，按专业统计学业表现，识别学习模式，并使用随机森林模型预测期末成绩。\n" +
		"参数可以通过命令行、配置文件或以" + EnvPrefix + "_为前缀的环境变量指定。\n",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, FlagConfig, "",
		"配置文件路径，默认为$HOME/.student-analyzer.yaml")
	rootCmd.PersistentFlags().String(FlagDataset, core.DefaultDatasetFile,
		"学生数据文件")
	rootCmd.PersistentFlags().String(FlagModelFile, model.DefaultModelFile,
		"模型文件，不存在时将训练并保存")
	rootCmd.PersistentFlags().String(FlagFeatureFile, model.DefaultFeatureFile,
		"特征列文件，不存在时将训练并保存")

	for _, name := range []string{FlagDataset, FlagModelFile, FlagFeatureFile} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	// .env不存在时忽略
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".student-analyzer")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func predictorConfig() model.Config {
	return model.Config{
		DatasetFile: viper.GetString(FlagDataset),
		ModelFile:   viper.GetString(FlagModelFile),
		FeatureFile: viper.GetString(FlagFeatureFile),
	}
}
