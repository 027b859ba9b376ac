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
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/packagewjx/student-analyzer/internal/dataset"
	"github.com/packagewjx/student-analyzer/internal/report"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "在终端输出各专业的统计表格",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlag(FlagFocusMajor, cmd.Flags().Lookup(FlagFocusMajor))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := dataset.LoadFile(viper.GetString(FlagDataset))
		if err != nil {
			return err
		}
		r := report.Build(records, core.Major(viper.GetString(FlagFocusMajor)))

		fmt.Printf("共%d名学生\n\n性别比例(%%)\n", r.TotalStudents)
		table := newTable("专业", "女", "男")
		for _, row := range r.GenderRatios {
			table.Append([]string{string(row.Major), formatFloat(row.Female), formatFloat(row.Male)})
		}
		table.Render()

		fmt.Println("\n学习指标")
		table = newTable("专业", "每周学习时长", "期中成绩", "期末成绩")
		for _, row := range r.MetricMeans {
			table.Append([]string{string(row.Major), formatFloat(row.StudyHours), formatFloat(row.Midterm), formatFloat(row.Final)})
		}
		table.Render()

		fmt.Println("\n出勤率排名(%)")
		table = newTable("排名", "专业", "平均出勤率")
		for _, row := range r.AttendanceRanking {
			table.Append([]string{strconv.Itoa(row.Rank), string(row.Major), formatFloat(row.AvgAttendance)})
		}
		table.Render()

		d := r.DeepDive
		if d == nil {
			fmt.Printf("\n专项分析失败：%s\n", r.DeepDiveError)
			return nil
		}
		fmt.Printf("\n%s专业专项分析\n", d.Major)
		table = newTable("人数", "每周学习时长", "出勤率(%)", "期末成绩", "及格率(%)")
		table.Append([]string{strconv.Itoa(d.Count), formatFloat(d.AvgStudyHours), formatFloat(d.AvgAttendance),
			formatFloat(d.AvgFinal), formatFloat(d.PassRate)})
		table.Render()
		return nil
	},
}

func newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	return table
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String(FlagFocusMajor, string(report.DefaultFocusMajor),
		"专项分析的专业")
}
