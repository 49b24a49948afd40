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

package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unionvec/unionvec/pkg/chunk"
	"github.com/unionvec/unionvec/pkg/common"
)

func Test_parquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.parquet")

	data := &chunk.Chunk{
		Data: []*chunk.Vector{
			chunk.NewInt32FlatVector([]int32{1, 2, 3}, 3),
			chunk.NewVarcharFlatVector([]string{"a", "b", "c"}, 3),
		},
		Count: 3,
	}
	require.NoError(t, WriteParquet(path, []string{"num", "name"}, data))

	types := []common.LType{common.IntegerType(), common.VarcharType()}
	got, err := ReadParquet(path, types, 16)
	require.NoError(t, err)
	require.Equal(t, 3, got.Card())
	assert.Equal(t, int64(2), got.Data[0].GetValue(1).I64)
	assert.Equal(t, "c", got.Data[1].GetValue(2).Str)
}

func Test_parquetNameCountMismatch(t *testing.T) {
	data := &chunk.Chunk{
		Data:  []*chunk.Vector{chunk.NewInt32FlatVector([]int32{1}, 1)},
		Count: 1,
	}
	err := WriteParquet("unused.parquet", []string{"a", "b"}, data)
	assert.Error(t, err)
}
