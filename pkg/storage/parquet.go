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
	"errors"
	"fmt"
	"io"

	pqLocal "github.com/xitongsys/parquet-go-source/local"
	pqReader "github.com/xitongsys/parquet-go/reader"
	pqWriter "github.com/xitongsys/parquet-go/writer"

	"github.com/unionvec/unionvec/pkg/chunk"
	"github.com/unionvec/unionvec/pkg/common"
)

// WriteParquet dumps the chunk to a parquet file, one column per vector.
// Union columns must be extracted to plain columns first.
func WriteParquet(path string, names []string, data *chunk.Chunk) error {
	if len(names) != data.ColumnCount() {
		return fmt.Errorf("%d names for %d columns", len(names), data.ColumnCount())
	}
	md := make([]string, 0, len(names))
	for i, name := range names {
		m, err := parquetFieldMeta(name, data.Data[i].Typ())
		if err != nil {
			return err
		}
		md = append(md, m)
	}

	fw, err := pqLocal.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fw.Close()

	pw, err := pqWriter.NewCSVWriter(md, fw, 1)
	if err != nil {
		return err
	}
	for i := 0; i < data.Card(); i++ {
		row := make([]interface{}, data.ColumnCount())
		for j := 0; j < data.ColumnCount(); j++ {
			row[j] = parquetCell(data.Data[j].GetValue(i))
		}
		if err = pw.Write(row); err != nil {
			return err
		}
	}
	return pw.WriteStop()
}

func parquetFieldMeta(name string, lTyp common.LType) (string, error) {
	switch lTyp.Id {
	case common.LTID_BOOLEAN:
		return fmt.Sprintf("name=%s, type=BOOLEAN, repetitiontype=OPTIONAL", name), nil
	case common.LTID_TINYINT, common.LTID_SMALLINT, common.LTID_INTEGER:
		return fmt.Sprintf("name=%s, type=INT32, repetitiontype=OPTIONAL", name), nil
	case common.LTID_BIGINT:
		return fmt.Sprintf("name=%s, type=INT64, repetitiontype=OPTIONAL", name), nil
	case common.LTID_FLOAT:
		return fmt.Sprintf("name=%s, type=FLOAT, repetitiontype=OPTIONAL", name), nil
	case common.LTID_DOUBLE:
		return fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", name), nil
	case common.LTID_VARCHAR, common.LTID_DECIMAL, common.LTID_UNION:
		// rendered as text
		return fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", name), nil
	default:
		return "", fmt.Errorf("usp parquet type %v", lTyp)
	}
}

func parquetCell(val *chunk.Value) interface{} {
	if val.IsNull {
		return nil
	}
	switch val.Typ.Id {
	case common.LTID_BOOLEAN:
		return val.Bool
	case common.LTID_TINYINT, common.LTID_SMALLINT, common.LTID_INTEGER:
		return int32(val.I64)
	case common.LTID_BIGINT:
		return val.I64
	case common.LTID_FLOAT:
		return float32(val.F64)
	case common.LTID_DOUBLE:
		return val.F64
	default:
		return val.String()
	}
}

// ReadParquet loads up to maxCnt rows of the first columns of a parquet
// file into a chunk typed by types.
func ReadParquet(path string, types []common.LType, maxCnt int) (*chunk.Chunk, error) {
	fr, err := pqLocal.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	pr, err := pqReader.NewParquetColumnReader(fr, 1)
	if err != nil {
		return nil, err
	}
	defer pr.ReadStop()

	output := &chunk.Chunk{}
	output.Init(types, max(maxCnt, 1))

	rowCnt := -1
	for j := range types {
		values, _, _, err := pr.ReadColumnByIndex(int64(j), int64(maxCnt))
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if rowCnt < 0 {
			rowCnt = len(values)
		} else if len(values) != rowCnt {
			return nil, fmt.Errorf(
				"column %d has %d values, previous columns have %d",
				j, len(values), rowCnt)
		}
		vec := output.Data[j]
		for i := 0; i < len(values); i++ {
			val, err := parquetColToValue(values[i], vec.Typ())
			if err != nil {
				return nil, err
			}
			vec.SetValue(i, val)
		}
	}
	if rowCnt < 0 {
		rowCnt = 0
	}
	output.SetCard(rowCnt)
	return output, nil
}

func parquetColToValue(field any, lTyp common.LType) (*chunk.Value, error) {
	val := &chunk.Value{
		Typ: lTyp,
	}
	if field == nil {
		val.IsNull = true
		return val, nil
	}
	switch lTyp.Id {
	case common.LTID_BOOLEAN:
		b, ok := field.(bool)
		if !ok {
			return nil, fmt.Errorf("usp parquet value %T for %v", field, lTyp)
		}
		val.Bool = b
	case common.LTID_TINYINT, common.LTID_SMALLINT,
		common.LTID_INTEGER, common.LTID_BIGINT:
		switch fVal := field.(type) {
		case int32:
			val.I64 = int64(fVal)
		case int64:
			val.I64 = fVal
		default:
			return nil, fmt.Errorf("usp parquet value %T for %v", field, lTyp)
		}
	case common.LTID_FLOAT, common.LTID_DOUBLE:
		switch fVal := field.(type) {
		case float32:
			val.F64 = float64(fVal)
		case float64:
			val.F64 = fVal
		default:
			return nil, fmt.Errorf("usp parquet value %T for %v", field, lTyp)
		}
	case common.LTID_VARCHAR:
		s, ok := field.(string)
		if !ok {
			return nil, fmt.Errorf("usp parquet value %T for %v", field, lTyp)
		}
		val.Str = s
	default:
		return nil, fmt.Errorf("usp parquet type %v", lTyp)
	}
	return val, nil
}
