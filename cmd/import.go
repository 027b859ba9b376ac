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

	"github.com/packagewjx/student-analyzer/internal/dataset"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import excelFile outputFile",
	Short: "将Excel表格转换为逗号分隔的学生数据文件",
	Long:  "读取Excel文件的第一个工作表，表头需包含学生数据的所有列，多余的列将被忽略。\n",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("参数错误")
		} else if args[0] == args[1] {
			return fmt.Errorf("excelFile与outputFile不能一致")
		} else if dataset.FormatOf(args[0]) != dataset.Excel {
			return fmt.Errorf("%s不是xlsx文件", args[0])
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := dataset.LoadFile(args[0])
		if err != nil {
			return err
		}

		out, err := os.Create(args[1])
		if err != nil {
			return errors.Wrap(err, "创建输出文件失败")
		}
		defer out.Close()
		if err = dataset.Write(out, records); err != nil {
			return errors.Wrap(err, "写入数据文件失败")
		}
		log.Printf("已将%d条记录写入%s\n", len(records), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
