package validate

import (
	"errors"
	"strings"
	"testing"
)

var countrySchema = Schema{
	Entity: "country",
	Fields: []Field{
		{Name: "nume", Kind: String},
		{Name: "lat", Kind: Real},
		{Name: "lon", Kind: Real},
	},
}

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	payload, err := DecodeObject(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeObject(%s): %v", body, err)
	}
	return payload
}

func TestCreate_Valid(t *testing.T) {
	payload := decode(t, `{"nume":"Romania","lat":45.9,"lon":24.9}`)
	if err := countrySchema.Create(payload); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestCreate_NumericStringsAccepted(t *testing.T) {
	payload := decode(t, `{"nume":"Romania","lat":"45.9","lon":"24.9"}`)
	if err := countrySchema.Create(payload); err != nil {
		t.Fatalf("Create with numeric strings: %v", err)
	}
}

func TestCreate_WrongFieldCount(t *testing.T) {
	t.Run("missing field", func(t *testing.T) {
		payload := decode(t, `{"nume":"Romania","lat":45.9}`)
		if err := countrySchema.Create(payload); err == nil {
			t.Fatal("expected error for two fields")
		}
	})
	t.Run("extra field", func(t *testing.T) {
		payload := decode(t, `{"nume":"Romania","lat":45.9,"lon":24.9,"x":1}`)
		if err := countrySchema.Create(payload); err == nil {
			t.Fatal("expected error for four fields")
		}
	})
}

func TestCreate_WrongKeyRightCount(t *testing.T) {
	payload := decode(t, `{"name":"Romania","lat":45.9,"lon":24.9}`)
	err := countrySchema.Create(payload)
	if err == nil {
		t.Fatal("expected error for missing nume key")
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T; want *FieldError", err)
	}
}

func TestCreate_NonNumericReal(t *testing.T) {
	payload := decode(t, `{"nume":"Romania","lat":"north","lon":24.9}`)
	err := countrySchema.Create(payload)
	if err == nil {
		t.Fatal("expected error for lat=north")
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T; want *FieldError", err)
	}
	if fe.Field != "lat" {
		t.Errorf("Field = %q; want lat", fe.Field)
	}
	if fe.Value != "north" {
		t.Errorf("Value = %v; want north", fe.Value)
	}
}

func TestCreate_ChecksInDeclarationOrder(t *testing.T) {
	// Both lat and lon are bad; the first declared field must be reported.
	payload := decode(t, `{"nume":"Romania","lat":"bad","lon":"worse"}`)
	err := countrySchema.Create(payload)
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T; want *FieldError", err)
	}
	if fe.Field != "lat" {
		t.Errorf("Field = %q; want lat (first declared failure)", fe.Field)
	}
}

func TestPut_Valid(t *testing.T) {
	payload := decode(t, `{"id":3,"nume":"Romania","lat":45.9,"lon":24.9}`)
	if err := countrySchema.Put(payload); err != nil {
		t.Fatalf("Put: %v", err)
	}
}

func TestPut_RequiresID(t *testing.T) {
	t.Run("id absent, count right", func(t *testing.T) {
		payload := decode(t, `{"x":1,"nume":"Romania","lat":45.9,"lon":24.9}`)
		if err := countrySchema.Put(payload); err == nil {
			t.Fatal("expected error when id is absent")
		}
	})
	t.Run("id not an integer", func(t *testing.T) {
		payload := decode(t, `{"id":"abc","nume":"Romania","lat":45.9,"lon":24.9}`)
		if err := countrySchema.Put(payload); err == nil {
			t.Fatal("expected error for id=abc")
		}
	})
	t.Run("create-sized payload rejected", func(t *testing.T) {
		payload := decode(t, `{"nume":"Romania","lat":45.9,"lon":24.9}`)
		if err := countrySchema.Put(payload); err == nil {
			t.Fatal("expected error for missing id field count")
		}
	})
}

func TestNumber(t *testing.T) {
	payload := decode(t, `{"a":1,"b":2.5,"c":"3.25","d":"x","e":true}`)
	if v, err := Number(payload["a"]); err != nil || v != 1 {
		t.Errorf("Number(1) = %v, %v", v, err)
	}
	if v, err := Number(payload["b"]); err != nil || v != 2.5 {
		t.Errorf("Number(2.5) = %v, %v", v, err)
	}
	if v, err := Number(payload["c"]); err != nil || v != 3.25 {
		t.Errorf("Number(\"3.25\") = %v, %v", v, err)
	}
	if _, err := Number(payload["d"]); err == nil {
		t.Error("Number(\"x\") should fail")
	}
	if _, err := Number(payload["e"]); err == nil {
		t.Error("Number(true) should fail")
	}
}

func TestInteger(t *testing.T) {
	payload := decode(t, `{"a":4,"b":4.5,"c":"7","d":"4.5"}`)
	if v, err := Integer(payload["a"]); err != nil || v != 4 {
		t.Errorf("Integer(4) = %v, %v", v, err)
	}
	if _, err := Integer(payload["b"]); err == nil {
		t.Error("Integer(4.5) should fail")
	}
	if v, err := Integer(payload["c"]); err != nil || v != 7 {
		t.Errorf("Integer(\"7\") = %v, %v", v, err)
	}
	if _, err := Integer(payload["d"]); err == nil {
		t.Error("Integer(\"4.5\") should fail")
	}
}

func TestText(t *testing.T) {
	payload := decode(t, `{"s":"Cluj","n":12}`)
	if got := Text(payload["s"]); got != "Cluj" {
		t.Errorf("Text = %q; want Cluj", got)
	}
	if got := Text(payload["n"]); got != "12" {
		t.Errorf("Text(12) = %q; want 12", got)
	}
}

func TestDecodeObject_Invalid(t *testing.T) {
	if _, err := DecodeObject(strings.NewReader(`not json`)); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := DecodeObject(strings.NewReader(`[1,2]`)); err == nil {
		t.Fatal("expected decode error for non-object")
	}
}
