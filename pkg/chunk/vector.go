package chunk

import (
	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/unionvec/unionvec/pkg/common"
	"github.com/unionvec/unionvec/pkg/util"
)

type Vector struct {
	_PhyFormat PhyFormat
	_Typ       common.LType
	Data       []byte
	Mask       *util.Bitmap
	Buf        *VecBuffer
	Aux        *VecBuffer
}

func (vec *Vector) Init(cap int) {
	vec.Aux = nil
	vec.Mask.Reset()
	sz := vec.Typ().GetInternalType().Size()
	if sz > 0 {
		vec.Buf = NewStandardBuffer(vec.Typ(), cap)
		vec.Data = vec.Buf.Data
	}
	if cap > util.DefaultVectorSize {
		vec.Mask.Resize(util.DefaultVectorSize, cap)
	}
}

func (vec *Vector) Typ() common.LType {
	return vec._Typ
}

func (vec *Vector) PhyFormat() PhyFormat {
	return vec._PhyFormat
}

func (vec *Vector) SetPhyFormat(pf PhyFormat) {
	vec._PhyFormat = pf
	//
	if vec.Typ().GetInternalType().IsConstant() &&
		(vec.PhyFormat().IsConst() || vec.PhyFormat().IsFlat()) {
		vec.Aux = nil
	}
}

// Reference makes vec an alias of other. No data is copied.
func (vec *Vector) Reference(other *Vector) {
	util.AssertFunc(vec.Typ().Equal(other.Typ()))
	vec.Reinterpret(other)
}

func (vec *Vector) ReferenceValue(val *Value) {
	util.AssertFunc(vec.Typ().Id == val.Typ.Id)
	vec.SetPhyFormat(PF_CONST)
	vec.Buf = NewConstBuffer(val.Typ)
	vec.Aux = nil
	vec.Data = GetDataInPhyFormatConst(vec)
	vec.SetValue(0, val)
}

func (vec *Vector) Reinterpret(other *Vector) {
	vec._PhyFormat = other._PhyFormat
	vec.Buf = other.Buf
	vec.Aux = other.Aux
	vec.Data = other.Data
	vec.Mask = other.Mask
}

func (vec *Vector) GetValue(idx int) *Value {
	switch vec.PhyFormat() {
	case PF_CONST:
		idx = 0
	case PF_FLAT:
	case PF_DICT:
		sel := GetSelVectorInPhyFormatDict(vec)
		child := GetChildInPhyFormatDict(vec)
		return child.GetValue(sel.GetIndex(idx))
	default:
		panic("usp")
	}
	if !vec.Mask.RowIsValid(uint64(idx)) {
		return &Value{
			Typ:    vec.Typ(),
			IsNull: true,
		}
	}

	switch vec.Typ().Id {
	case common.LTID_BOOLEAN:
		data := GetSliceInPhyFormatFlat[bool](vec)
		return &Value{
			Typ:  vec.Typ(),
			Bool: data[idx],
		}
	case common.LTID_TINYINT:
		data := GetSliceInPhyFormatFlat[int8](vec)
		return &Value{
			Typ: vec.Typ(),
			I64: int64(data[idx]),
		}
	case common.LTID_SMALLINT:
		data := GetSliceInPhyFormatFlat[int16](vec)
		return &Value{
			Typ: vec.Typ(),
			I64: int64(data[idx]),
		}
	case common.LTID_INTEGER:
		data := GetSliceInPhyFormatFlat[int32](vec)
		return &Value{
			Typ: vec.Typ(),
			I64: int64(data[idx]),
		}
	case common.LTID_BIGINT:
		data := GetSliceInPhyFormatFlat[int64](vec)
		return &Value{
			Typ: vec.Typ(),
			I64: data[idx],
		}
	case common.LTID_UTINYINT:
		data := GetSliceInPhyFormatFlat[uint8](vec)
		return &Value{
			Typ: vec.Typ(),
			U64: uint64(data[idx]),
		}
	case common.LTID_USMALLINT:
		data := GetSliceInPhyFormatFlat[uint16](vec)
		return &Value{
			Typ: vec.Typ(),
			U64: uint64(data[idx]),
		}
	case common.LTID_UINTEGER:
		data := GetSliceInPhyFormatFlat[uint32](vec)
		return &Value{
			Typ: vec.Typ(),
			U64: uint64(data[idx]),
		}
	case common.LTID_UBIGINT:
		data := GetSliceInPhyFormatFlat[uint64](vec)
		return &Value{
			Typ: vec.Typ(),
			U64: data[idx],
		}
	case common.LTID_FLOAT:
		data := GetSliceInPhyFormatFlat[float32](vec)
		return &Value{
			Typ: vec.Typ(),
			F64: float64(data[idx]),
		}
	case common.LTID_DOUBLE:
		data := GetSliceInPhyFormatFlat[float64](vec)
		return &Value{
			Typ: vec.Typ(),
			F64: data[idx],
		}
	case common.LTID_VARCHAR:
		data := GetSliceInPhyFormatFlat[common.String](vec)
		return &Value{
			Typ: vec.Typ(),
			Str: data[idx].String(),
		}
	case common.LTID_DECIMAL:
		data := GetSliceInPhyFormatFlat[common.Decimal](vec)
		d := data[idx]
		w, f, ok := d.Decimal.Int64(vec.Typ().Scale)
		if !ok {
			return &Value{
				Typ: vec.Typ(),
				Str: data[idx].String(),
			}
		} else {
			return &Value{
				Typ:   vec.Typ(),
				I64:   w,
				I64_1: f,
				Str:   "",
			}
		}
	case common.LTID_UNION:
		return unionGetValue(vec, idx)
	default:
		panic("usp")
	}
}

func (vec *Vector) SetValue(idx int, val *Value) {
	if vec.PhyFormat().IsDict() {
		sel := GetSelVectorInPhyFormatDict(vec)
		child := GetChildInPhyFormatDict(vec)
		child.SetValue(sel.GetIndex(idx), val)
	}
	util.AssertFunc(val.Typ.Equal(vec.Typ()))
	util.AssertFunc(val.Typ.GetInternalType() == vec.Typ().GetInternalType())
	vec.Mask.Set(uint64(idx), !val.IsNull)
	pTyp := vec.Typ().GetInternalType()
	switch pTyp {
	case common.BOOL:
		slice := util.ToSlice[bool](vec.Data, pTyp.Size())
		slice[idx] = val.Bool
	case common.INT8:
		slice := util.ToSlice[int8](vec.Data, pTyp.Size())
		slice[idx] = int8(val.I64)
	case common.INT16:
		slice := util.ToSlice[int16](vec.Data, pTyp.Size())
		slice[idx] = int16(val.I64)
	case common.INT32:
		slice := util.ToSlice[int32](vec.Data, pTyp.Size())
		slice[idx] = int32(val.I64)
	case common.INT64:
		slice := util.ToSlice[int64](vec.Data, pTyp.Size())
		slice[idx] = val.I64
	case common.UINT8:
		slice := util.ToSlice[uint8](vec.Data, pTyp.Size())
		slice[idx] = uint8(val.U64)
	case common.UINT16:
		slice := util.ToSlice[uint16](vec.Data, pTyp.Size())
		slice[idx] = uint16(val.U64)
	case common.UINT32:
		slice := util.ToSlice[uint32](vec.Data, pTyp.Size())
		slice[idx] = uint32(val.U64)
	case common.UINT64:
		slice := util.ToSlice[uint64](vec.Data, pTyp.Size())
		slice[idx] = val.U64
	case common.FLOAT:
		slice := util.ToSlice[float32](vec.Data, pTyp.Size())
		slice[idx] = float32(val.F64)
	case common.DOUBLE:
		slice := util.ToSlice[float64](vec.Data, pTyp.Size())
		slice[idx] = val.F64
	case common.VARCHAR:
		slice := util.ToSlice[common.String](vec.Data, pTyp.Size())
		slice[idx] = common.CopyString(val.Str)
	case common.DECIMAL:
		slice := util.ToSlice[common.Decimal](vec.Data, pTyp.Size())
		if len(val.Str) != 0 {
			decVal, err := decimal.ParseExact(val.Str, vec.Typ().Scale)
			if err != nil {
				panic(err)
			}
			slice[idx] = common.Decimal{
				Decimal: decVal,
			}
		} else {
			nDec, err := decimal.NewFromInt64(val.I64, val.I64_1, vec._Typ.Scale)
			if err != nil {
				panic(err)
			}
			slice[idx] = common.Decimal{
				Decimal: nDec,
			}
		}
	default:
		panic("usp")
	}
}

func (vec *Vector) Reset() {
	vec._PhyFormat = PF_FLAT
	vec.Mask.Reset()
}

func (vec *Vector) Print(prefix string, rowCount int) {
	fields := make([]zap.Field, 0)
	for j := 0; j < rowCount; j++ {
		val := vec.GetValue(j)
		fields = append(fields, zap.String("", val.String()))
	}
	util.Info(prefix, fields...)
}

// constant vector
func GetDataInPhyFormatConst(vec *Vector) []byte {
	util.AssertFunc(vec.PhyFormat().IsConst() || vec.PhyFormat().IsFlat())
	return vec.Data
}

func GetSliceInPhyFormatConst[T any](vec *Vector) []T {
	util.AssertFunc(vec.PhyFormat().IsConst() || vec.PhyFormat().IsFlat())
	pSize := vec.Typ().GetInternalType().Size()
	return util.ToSlice[T](vec.Data, pSize)
}

func IsNullInPhyFormatConst(vec *Vector) bool {
	util.AssertFunc(vec.PhyFormat().IsConst())
	return !vec.Mask.RowIsValid(0)
}

func SetNullInPhyFormatConst(vec *Vector, null bool) {
	util.AssertFunc(vec.PhyFormat().IsConst())
	vec.Mask.Set(0, !null)
}

func GetMaskInPhyFormatConst(vec *Vector) *util.Bitmap {
	util.AssertFunc(vec.PhyFormat().IsConst())
	return vec.Mask
}

// flat vector
func GetDataInPhyFormatFlat(vec *Vector) []byte {
	return GetDataInPhyFormatConst(vec)
}

func GetSliceInPhyFormatFlat[T any](vec *Vector) []T {
	return GetSliceInPhyFormatConst[T](vec)
}

func SetMaskInPhyFormatFlat(vec *Vector, mask *util.Bitmap) {
	util.AssertFunc(vec.PhyFormat().IsFlat())
	vec.Mask.ShareWith(mask)
}

func GetMaskInPhyFormatFlat(vec *Vector) *util.Bitmap {
	util.AssertFunc(vec.PhyFormat().IsFlat())
	return vec.Mask
}

func SetNullInPhyFormatFlat(vec *Vector, idx uint64, null bool) {
	util.AssertFunc(vec.PhyFormat().IsFlat())
	vec.Mask.Set(idx, !null)
}

// dictionary vector
func GetSelVectorInPhyFormatDict(vec *Vector) *SelectVector {
	util.AssertFunc(vec.PhyFormat().IsDict())
	return vec.Buf.GetSelVector()
}

func GetChildInPhyFormatDict(vec *Vector) *Vector {
	util.AssertFunc(vec.PhyFormat().IsDict())
	return vec.Aux.Child
}

func SetData(vec *Vector, slice []byte) {
	util.AssertFunc(vec.PhyFormat().IsFlat())
	vec.Data = slice
}

func HasNull(input *Vector, count int) bool {
	if count == 0 {
		return false
	}
	if input.PhyFormat() == PF_CONST {
		return IsNullInPhyFormatConst(input)
	}
	for i := 0; i < count; i++ {
		if input.GetValue(i).IsNull {
			return true
		}
	}
	return false
}
