package skema_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"testing"

	skema "github.com/reoring/skema"
	g "github.com/reoring/skema/dsl"
)

// ---- Helpers ----

func smallUserSchema() *g.ObjectSchema {
	return g.Object(
		g.Field("id", g.String()),
		g.Field("name", g.String().Trim().Optional()),
		g.Field("age", g.Number().Min(1).Max(150).Optional()),
	)
}

func smallUserJSON() []byte {
	return []byte(`{"id":"u_1","name":"  alice  ","age":30}`)
}

func smallUserYAML() []byte {
	return []byte("id: u_1\nname: '  alice  '\nage: 30\n")
}

// generateHugeJSONArray returns a JSON array of objects of the form:
// [{"id":"obj_0","name":"n0","age":0,"active":true,"meta":{"score":0},"k0":"v0",...}, ...]
func generateHugeJSONArray(numObjects int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * (64 + extraFields*16))
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		fmt.Fprintf(&buf, "\"id\":\"obj_%d\",", i)
		fmt.Fprintf(&buf, "\"name\":\"n%d\",", i)
		fmt.Fprintf(&buf, "\"age\":%d,", i)
		if i%2 == 0 {
			buf.WriteString("\"active\":true,")
		} else {
			buf.WriteString("\"active\":false,")
		}
		fmt.Fprintf(&buf, "\"meta\":{\"score\":%d}", i)
		for k := 0; k < extraFields; k++ {
			buf.WriteString(",\"k")
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString("\":\"v")
			buf.WriteString(strconv.Itoa(i))
			buf.WriteString("_")
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString("\"")
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// only id and meta.score are declared; every extra key is dropped from the output
func hugeItemSchema() *g.ObjectSchema {
	return g.Object(
		g.Field("id", g.String()),
		g.Field("meta", g.Object(g.Field("score", g.Number()))),
	)
}

// ---- Micro benchmarks (small inputs) ----

func Benchmark_SafeParse_Object_Small(b *testing.B) {
	s := smallUserSchema()
	var in map[string]any
	if err := json.Unmarshal(smallUserJSON(), &in); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := s.SafeParse(in); !res.Success {
			b.Fatal(res.Issues)
		}
	}
}

func Benchmark_ParseFrom_Object_Small_JSONBytes(b *testing.B) {
	ctx := context.Background()
	s := smallUserSchema()
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := skema.ParseFrom(ctx, s, skema.JSONBytes(data))
		if err != nil || !res.Success {
			b.Fatal(err, res.Issues)
		}
	}
}

func Benchmark_ParseFrom_Object_Small_JSONReader(b *testing.B) {
	ctx := context.Background()
	s := smallUserSchema()
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		src := skema.JSONReader(bytes.NewReader(data))
		res, err := skema.ParseFrom(ctx, s, src)
		if err != nil || !res.Success {
			b.Fatal(err, res.Issues)
		}
	}
}

func Benchmark_ParseFrom_Object_Small_YAMLBytes(b *testing.B) {
	ctx := context.Background()
	s := smallUserSchema()
	data := smallUserYAML()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := skema.ParseFrom(ctx, s, skema.YAMLBytes(data))
		if err != nil || !res.Success {
			b.Fatal(err, res.Issues)
		}
	}
}

func Benchmark_ParseFrom_Object_Small_RejectDuplicates(b *testing.B) {
	ctx := context.Background()
	s := smallUserSchema()
	data := smallUserJSON()
	opt := skema.ParseOpt{RejectDuplicateKeys: true, MaxDepth: 8}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := skema.ParseFrom(ctx, s, skema.JSONBytes(data), opt)
		if err != nil || !res.Success {
			b.Fatal(err, res.Issues)
		}
	}
}

// Array micro: ["a","b","c"]
func Benchmark_ParseFrom_Array_String_Small(b *testing.B) {
	ctx := context.Background()
	s := g.String().Array()
	data := []byte(`["a","b","c"]`)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := skema.ParseFrom(ctx, s, skema.JSONBytes(data))
		if err != nil || !res.Success {
			b.Fatal(err, res.Issues)
		}
	}
}

// Union micro: the second alternative matches, so the first one is always tried and discarded.
func Benchmark_SafeParse_Union_SecondAlternative(b *testing.B) {
	s := g.AnyOf(
		g.Object(g.Field("role", g.Literal("user"))),
		g.Object(g.Field("role", g.Literal("admin")), g.Field("value", g.Number().Min(1).Max(10))),
	)
	in := map[string]any{"role": "admin", "value": 2.0}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := s.SafeParse(in); !res.Success {
			b.Fatal(res.Issues)
		}
	}
}

// ---- Macro benchmarks (huge JSON) ----

// 10k objects with 8 extra fields each ~ O(10-20MB) depending on numbers
const (
	hugeObjects   = 10000
	hugeExtraKeys = 8
)

func Benchmark_ParseFrom_HugeArray_Objects_JSONBytes(b *testing.B) {
	ctx := context.Background()
	s := hugeItemSchema().Array()
	data := generateHugeJSONArray(hugeObjects, hugeExtraKeys)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := skema.ParseFrom(ctx, s, skema.JSONBytes(data))
		if err != nil || !res.Success {
			b.Fatal(err, res.Issues)
		}
	}
}

func Benchmark_ParseFrom_HugeArray_Objects_Enforced(b *testing.B) {
	ctx := context.Background()
	s := hugeItemSchema().Array()
	data := generateHugeJSONArray(hugeObjects, hugeExtraKeys)
	opt := skema.ParseOpt{RejectDuplicateKeys: true, MaxDepth: 16, MaxBytes: int64(len(data))}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := skema.ParseFrom(ctx, s, skema.JSONBytes(data), opt)
		if err != nil || !res.Success {
			b.Fatal(err, res.Issues)
		}
	}
}

func Benchmark_Bind_HugeArray_Objects(b *testing.B) {
	type meta struct {
		Score int `json:"score"`
	}
	type item struct {
		ID   string `json:"id"`
		Meta meta   `json:"meta"`
	}
	ctx := context.Background()
	s := g.MustBind[item](hugeItemSchema()).Array()
	data := generateHugeJSONArray(hugeObjects, hugeExtraKeys)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := skema.ParseFrom(ctx, s, skema.JSONBytes(data))
		if err != nil || !res.Success {
			b.Fatal(err, res.Issues)
		}
	}
}

// ---- Baseline: encoding/json ----

func Benchmark_encodingJSON_Unmarshal_SmallObject(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v map[string]any
		if err := json.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_encodingJSON_Unmarshal_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(hugeObjects, hugeExtraKeys)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v []map[string]any
		if err := json.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_encodingJSON_Decoder_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(hugeObjects, hugeExtraKeys)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v []map[string]any
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&v); err != nil && err != io.EOF {
			b.Fatal(err)
		}
	}
}
