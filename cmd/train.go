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
	"context"
	"log"

	"github.com/packagewjx/student-analyzer/internal/model"
	"github.com/spf13/cobra"
)

const FlagForce = "force"

var force bool

// trainCmd represents the train command
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "训练成绩预测模型并保存到模型文件",
	Long: "模型文件已存在时不会重新训练，除非指定--force。\n" +
		"数据文件变化不会使已有模型失效，需要删除模型文件或使用--force重新训练。\n",
	RunE: func(cmd *cobra.Command, args []string) error {
		predictor := model.NewPredictor(predictorConfig())
		pipeline, err := predictor.Train(context.Background(), force)
		if err != nil {
			return err
		}
		log.Printf("模型就绪，训练样本%d个，特征%v\n", pipeline.NumSamples, pipeline.FeatureColumns)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().BoolVarP(&force, FlagForce, "f", false,
		"重新训练并覆盖已有的模型文件")
}
