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
	"fmt"

	"github.com/fatih/color"
	"github.com/packagewjx/student-analyzer/internal/feedback"
	"github.com/packagewjx/student-analyzer/internal/model"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/packagewjx/student-analyzer/pkg/server"
	"github.com/spf13/cobra"
)

const (
	FlagGender     = "gender"
	FlagMajor      = "major"
	FlagStudyHours = "hours"
	FlagAttendance = "attendance"
	FlagMidterm    = "midterm"
	FlagHomework   = "homework"
)

var (
	gender     string
	major      string
	studyHours float64
	attendance float64
	midterm    float64
	homework   float64
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "预测单个学生的期末成绩并给出学习建议",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range []string{FlagGender, FlagMajor, FlagStudyHours, FlagAttendance, FlagMidterm, FlagHomework} {
			if !cmd.Flags().Changed(name) {
				return fmt.Errorf("必须指定%s", name)
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &server.PredictionInput{
			Gender:       core.Gender(gender),
			Major:        core.Major(major),
			StudyHours:   &studyHours,
			Attendance:   &attendance,
			MidtermScore: &midterm,
			HomeworkRate: &homework,
		}
		if err := input.Validate(); err != nil {
			return err
		}

		pipeline, err := model.NewPredictor(predictorConfig()).Load(context.Background())
		if err != nil {
			return err
		}
		record := input.Record()
		score, err := pipeline.Predict(record)
		if err != nil {
			return err
		}

		fb := feedback.Advise(score, record)
		fmt.Printf("预测期末成绩：%.1f分\n", score)
		if fb.Passed {
			color.Green("%s %s", fb.Title, fb.Caption)
		} else {
			color.Red("%s %s", fb.Title, fb.Caption)
		}
		color.Yellow(fb.Advice)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVarP(&gender, FlagGender, "g", "",
		"性别，可选值：男、女")
	predictCmd.Flags().StringVarP(&major, FlagMajor, "m", "",
		"专业，可选值：工商管理、人工智能、财务管理、电子商务、大数据管理")
	predictCmd.Flags().Float64Var(&studyHours, FlagStudyHours, 0,
		"每周学习时长（小时），0到60")
	predictCmd.Flags().Float64Var(&attendance, FlagAttendance, 0,
		"上课出勤率，0到1")
	predictCmd.Flags().Float64Var(&midterm, FlagMidterm, 0,
		"期中考试分数，0到100")
	predictCmd.Flags().Float64Var(&homework, FlagHomework, 0,
		"作业完成率，0到1")
}
