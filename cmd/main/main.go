// Copyright 2024-2025 unionvec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/unionvec/unionvec/pkg/chunk"
	"github.com/unionvec/unionvec/pkg/common"
	"github.com/unionvec/unionvec/pkg/compute"
	"github.com/unionvec/unionvec/pkg/storage"
	"github.com/unionvec/unionvec/pkg/util"
)

var runCfg = &util.Config{}

var info = "unionvec"
var RootCmd = &cobra.Command{
	Use:          "unionvec",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use unionvec --help or -h")
	},
}

var demoInfo = "extract fields from sample union columns"
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: demoInfo,
	Long:  demoInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initDemoCfg()
		return runDemo(runCfg)
	},
}

func init() {
	cobra.OnInitialize(loadConfig)
	initDemoCmd()
}

func initDemoCmd() {
	RootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVar(&runCfg.Demo.RowCount, "row_count", 8, "rows in the sample union column")
	demoCmd.Flags().StringVar(&runCfg.Demo.Layout, "layout", "both", "union layout. sparse, dense, both")
	demoCmd.Flags().StringVar(&runCfg.Demo.Field, "field", "str", "field to extract")
	demoCmd.Flags().StringVar(&runCfg.Result.Path, "result_path", "", "parquet output path. empty disables the dump")

	viper.BindPFlag("demo.rowCount", demoCmd.Flags().Lookup("row_count"))
	viper.BindPFlag("demo.layout", demoCmd.Flags().Lookup("layout"))
	viper.BindPFlag("demo.field", demoCmd.Flags().Lookup("field"))
	viper.BindPFlag("result.path", demoCmd.Flags().Lookup("result_path"))
}

func initDemoCfg() {
	runCfg.Demo.RowCount = viper.GetInt("demo.rowCount")
	runCfg.Demo.Layout = viper.GetString("demo.layout")
	runCfg.Demo.Field = viper.GetString("demo.field")
	runCfg.Result.Path = viper.GetString("result.path")
	runCfg.Debug.PrintResult = viper.GetBool("debug.printResult")
	runCfg.Debug.MaxPrint = viper.GetInt("debug.maxPrint")
}

var defCfgFilePaths = []string{".", "etc"}
var cfgFileName = "unionvec.toml"

func loadConfig() {
	viper.SetDefault("demo.rowCount", 8)
	viper.SetDefault("demo.layout", "both")
	viper.SetDefault("demo.field", "str")
	viper.SetDefault("debug.printResult", true)
	viper.SetDefault("debug.maxPrint", 32)
	for _, dirPath := range defCfgFilePaths {
		fpath := filepath.Join(dirPath, cfgFileName)
		if util.FileIsValid(fpath) {
			viper.SetConfigFile(fpath)
			err := viper.ReadInConfig()
			if err != nil {
				util.Error("load config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
				continue
			}
			return
		}
	}
	util.Warn("unionvec.toml not found, using defaults")
}

func demoUnionType() common.LType {
	return common.UnionType([]common.UnionMemberDef{
		{Id: 0, Name: "int", Typ: common.IntegerType()},
		{Id: 1, Name: "str", Typ: common.VarcharType()},
	})
}

// sampleSparseUnion alternates int and str rows, members row aligned.
func sampleSparseUnion(typ common.LType, n int) *chunk.Vector {
	ids := make([]common.UnionMemberId, n)
	intVec := chunk.NewFlatVector(common.IntegerType(), max(n, util.DefaultVectorSize))
	intData := chunk.GetSliceInPhyFormatFlat[int32](intVec)
	strs := make([]string, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			ids[i] = 1
		}
		intData[i] = int32(i * 10)
		strs[i] = fmt.Sprintf("s%d", i)
	}
	strVec := chunk.NewVarcharFlatVector(strs, max(n, util.DefaultVectorSize))
	vec := chunk.NewSparseUnionVector(typ, ids,
		[]*chunk.Vector{intVec, strVec}, n)
	if n > 2 {
		vec.Mask.SetInvalid(2)
	}
	return vec
}

// sampleDenseUnion stores each member compactly and points rows at it
// through offsets.
func sampleDenseUnion(typ common.LType, n int) *chunk.Vector {
	ids := make([]common.UnionMemberId, n)
	offsets := make([]int32, n)
	ints := make([]int32, 0, n)
	strs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			ids[i] = 1
			offsets[i] = int32(len(strs))
			strs = append(strs, fmt.Sprintf("s%d", i))
		} else {
			ids[i] = 0
			offsets[i] = int32(len(ints))
			ints = append(ints, int32(i*10))
		}
	}
	intVec := chunk.NewFlatVector(common.IntegerType(), max(len(ints), 1))
	copy(chunk.GetSliceInPhyFormatFlat[int32](intVec), ints)
	strVec := chunk.NewVarcharFlatVector(strs, max(len(strs), 1))
	return chunk.NewDenseUnionVector(typ, ids, offsets,
		[]*chunk.Vector{intVec, strVec},
		[]int{len(ints), len(strs)}, n)
}

func runDemo(cfg *util.Config) error {
	n := cfg.Demo.RowCount
	if n <= 0 {
		n = 8
	}
	typ := demoUnionType()

	layouts := make(map[string]*chunk.Vector)
	switch cfg.Demo.Layout {
	case "sparse":
		layouts["sparse"] = sampleSparseUnion(typ, n)
	case "dense":
		layouts["dense"] = sampleDenseUnion(typ, n)
	case "both":
		layouts["sparse"] = sampleSparseUnion(typ, n)
		layouts["dense"] = sampleDenseUnion(typ, n)
	default:
		return fmt.Errorf("unknown layout %s", cfg.Demo.Layout)
	}

	for name, vec := range layouts {
		if err := runLayout(cfg, name, vec, n); err != nil {
			return err
		}
	}
	return nil
}

func runLayout(cfg *util.Config, layout string, vec *chunk.Vector, n int) error {
	util.Info("extracting union field",
		zap.String("layout", layout),
		zap.String("field", cfg.Demo.Field),
		zap.Int("rows", n))

	input := &chunk.Chunk{}
	input.Init([]common.LType{vec.Typ()}, max(n, util.DefaultVectorSize))
	input.SetVector(0, vec)
	input.SetCard(n)

	colExpr := compute.NewColumnExpr(0, vec.Typ())
	extractExpr, err := compute.BindScalarFunc("union_extract",
		colExpr, compute.NewConstStrExpr(cfg.Demo.Field))
	if err != nil {
		return err
	}
	tagExpr, err := compute.BindScalarFunc("union_tag", colExpr)
	if err != nil {
		return err
	}

	exec := compute.NewExprExec(extractExpr, tagExpr)
	result := &chunk.Chunk{}
	result.Init([]common.LType{extractExpr.DataTyp, tagExpr.DataTyp},
		max(n, util.DefaultVectorSize))
	if err = exec.ExecuteExprs(input, result); err != nil {
		return err
	}

	if cfg.Debug.PrintResult {
		cnt := result.Card()
		if cfg.Debug.MaxPrint > 0 && cnt > cfg.Debug.MaxPrint {
			cnt = cfg.Debug.MaxPrint
		}
		shown := &chunk.Chunk{Data: result.Data, Count: cnt}
		shown.SetCap(result.Cap())
		shown.Print(layout)
	}

	if cfg.Result.Path != "" {
		out := &chunk.Chunk{
			Data:  []*chunk.Vector{vec, result.Data[0], result.Data[1]},
			Count: n,
		}
		path := fmt.Sprintf("%s.%s.parquet", cfg.Result.Path, layout)
		if err = storage.WriteParquet(path,
			[]string{"raw", cfg.Demo.Field, "tag"}, out); err != nil {
			return err
		}
		util.Info("wrote parquet", zap.String("path", path))
	}
	return nil
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
