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
	"log"
	"os"
	"regexp"
	"strconv"

	"github.com/packagewjx/student-analyzer/internal/classify"
	"github.com/packagewjx/student-analyzer/internal/dataset"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Global Flags
const (
	OutputPrecisionFlag = "outputPrecision"
	KMeansRoundFlag     = "kMeansRound"
)

// Global Defaults
const (
	DefaultOutputPrecision = 2
)

var outputPrecision int
var kMeansRound int

// clusterCmd represents the cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster outputFile numClass",
	Short: "按学习习惯对学生聚类，并输出各学习模式的中心到文件中",
	Long: "使用每周学习时长、出勤率、期中成绩与作业完成率标准化后运行K-Means++，\n" +
		"输出文件每行为一个学习模式的中心（原始单位），按平均期末成绩从高到低排列。\n",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("参数错误")
		} else if args[0] == viper.GetString(FlagDataset) {
			return fmt.Errorf("outputFile不能与数据文件一致")
		}

		if match, _ := regexp.MatchString("^\\d+$", args[1]); !match {
			return fmt.Errorf("类数量参数不是数字")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Println("读取数据中")
		records, err := dataset.LoadFile(viper.GetString(FlagDataset))
		if err != nil {
			return err
		}
		log.Println("读取数据完成")

		log.Println("运行K-Means算法中")
		numClass, _ := strconv.Atoi(args[1])
		patterns, err := classify.ClusterStudents(records, numClass, kMeansRound)
		if err != nil {
			return err
		}
		log.Println("运行K-Means算法完成")
		for _, p := range patterns {
			log.Printf("%s：%d人，平均期末成绩%.1f，及格率%.1f%%\n", p.Label(), p.Count, p.AvgFinal, p.PassRate)
		}

		out, err := os.Create(args[0])
		if err != nil {
			return errors.Wrap(err, "创建输出文件失败")
		}
		defer out.Close()
		err = classify.OutputResult(classify.Centers(patterns), classify.PatternColumns, out, outputPrecision)
		if err != nil {
			return errors.Wrap(err, "输出文件错误")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clusterCmd)

	clusterCmd.Flags().IntVarP(&outputPrecision, OutputPrecisionFlag, "p", DefaultOutputPrecision,
		"输出文件数据精度，默认为2")
	clusterCmd.Flags().IntVar(&kMeansRound, KMeansRoundFlag, classify.KMeansDefaultRound,
		"K-Means算法执行的轮次")
}
