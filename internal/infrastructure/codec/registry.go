// Package codec centraliza el registro BSON compartido por los adaptadores de persistencia.
// shopspring/decimal no tiene representación BSON propia: se guarda como Decimal128.
package codec

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	tDecimal = reflect.TypeOf(decimal.Decimal{})

	registryOnce sync.Once
	registry     *bsoncodec.Registry
)

// Registry devuelve el registro BSON con los codecs de la aplicación (singleton).
func Registry() *bsoncodec.Registry {
	registryOnce.Do(func() {
		r := bson.NewRegistry()
		r.RegisterTypeEncoder(tDecimal, bsoncodec.ValueEncoderFunc(encodeDecimal))
		r.RegisterTypeDecoder(tDecimal, bsoncodec.ValueDecoderFunc(decodeDecimal))
		registry = r
	})
	return registry
}

func encodeDecimal(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tDecimal {
		return bsoncodec.ValueEncoderError{Name: "DecimalEncodeValue", Types: []reflect.Type{tDecimal}, Received: val}
	}
	d := val.Interface().(decimal.Decimal)
	// String() recorta ceros a la derecha: 12.5 y 12.50 producen el mismo Decimal128.
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return fmt.Errorf("codec: decimal %s fuera de rango: %w", d.String(), err)
	}
	return vw.WriteDecimal128(d128)
}

func decodeDecimal(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tDecimal {
		return bsoncodec.ValueDecoderError{Name: "DecimalDecodeValue", Types: []reflect.Type{tDecimal}, Received: val}
	}
	var (
		d   decimal.Decimal
		err error
	)
	switch vr.Type() {
	case bsontype.Decimal128:
		var d128 primitive.Decimal128
		if d128, err = vr.ReadDecimal128(); err == nil {
			d, err = decimal.NewFromString(d128.String())
		}
	case bsontype.Double:
		var f float64
		if f, err = vr.ReadDouble(); err == nil {
			d = decimal.NewFromFloat(f)
		}
	case bsontype.Int32:
		var i int32
		if i, err = vr.ReadInt32(); err == nil {
			d = decimal.NewFromInt32(i)
		}
	case bsontype.Int64:
		var i int64
		if i, err = vr.ReadInt64(); err == nil {
			d = decimal.NewFromInt(i)
		}
	case bsontype.String:
		var s string
		if s, err = vr.ReadString(); err == nil {
			d, err = decimal.NewFromString(s)
		}
	case bsontype.Null:
		err = vr.ReadNull()
	default:
		return fmt.Errorf("codec: no se puede decodificar %v como decimal", vr.Type())
	}
	if err != nil {
		return fmt.Errorf("codec: decimal: %w", err)
	}
	val.Set(reflect.ValueOf(d))
	return nil
}

// Marshal codifica un documento con el registro de la aplicación.
func Marshal(doc any) ([]byte, error) {
	return bson.MarshalWithRegistry(Registry(), doc)
}

// Unmarshal decodifica un documento con el registro de la aplicación.
func Unmarshal(data []byte, out any) error {
	return bson.UnmarshalWithRegistry(Registry(), data, out)
}

// ToExtJSON codifica un documento como Extended JSON relajado (ObjectID como $oid, Decimal128 como $numberDecimal).
func ToExtJSON(doc any) ([]byte, error) {
	raw, err := Marshal(doc)
	if err != nil {
		return nil, err
	}
	return bson.MarshalExtJSON(bson.Raw(raw), false, false)
}

// FromExtJSON decodifica Extended JSON relajado hacia out.
func FromExtJSON(data []byte, out any) error {
	return bson.UnmarshalExtJSONWithRegistry(Registry(), data, false, out)
}
