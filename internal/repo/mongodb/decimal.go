package mongodb

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// decimalValue — decimal.Decimal в BSON.
// Пишется как Decimal128; читается из Decimal128, double, int32, int64 и строки.
type decimalValue struct {
	decimal.Decimal
}

func (d decimalValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	dec, err := toDecimal128(d.Decimal)
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(dec)
}

func (d *decimalValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	var v any
	switch t {
	case bsontype.Decimal128:
		v = raw.Decimal128()
	case bsontype.Double:
		v = raw.Double()
	case bsontype.Int32:
		v = raw.Int32()
	case bsontype.Int64:
		v = raw.Int64()
	case bsontype.String:
		v = raw.StringValue()
	case bsontype.Null, bsontype.Undefined:
		d.Decimal = decimal.Zero
		return nil
	default:
		return fmt.Errorf("decimal: unsupported bson type %s", t)
	}

	parsed, ok := decimalFrom(v)
	if !ok {
		return fmt.Errorf("decimal: cannot parse %v", v)
	}
	d.Decimal = parsed
	return nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	dec, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("decimal128 %s: %w", d.String(), err)
	}
	return dec, nil
}

// decimalFrom — число из значения, прочитанного в bson.M.
func decimalFrom(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case primitive.Decimal128:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(n), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// intFrom — целое из значения bson.M; дробные значения не принимаются.
func intFrom(v any) (int, bool) {
	switch n := v.(type) {
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	case primitive.Decimal128:
		d, ok := decimalFrom(n)
		if !ok || !d.Equal(d.Truncate(0)) {
			return 0, false
		}
		return int(d.IntPart()), true
	default:
		return 0, false
	}
}
