package models

import (
	"encoding/json"
	"testing"
)

func TestFlexIntUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "number", input: `{"v": 42}`, want: 42},
		{name: "numeric string", input: `{"v": "17"}`, want: 17},
		{name: "padded string", input: `{"v": " 8 "}`, want: 8},
		{name: "leading zero", input: `{"v": "08"}`, want: 8},
		{name: "zero string", input: `{"v": "0"}`, want: 0},
		{name: "integral float", input: `{"v": 3.0}`, want: 3},
		{name: "negative", input: `{"v": -5}`, want: -5},
		{name: "null", input: `{"v": null}`, want: 0},
		{name: "fraction", input: `{"v": 2.5}`, wantErr: true},
		{name: "word", input: `{"v": "ten"}`, wantErr: true},
		{name: "fraction string", input: `{"v": "2.5"}`, wantErr: true},
		{name: "empty string", input: `{"v": ""}`, wantErr: true},
		{name: "array", input: `{"v": [1]}`, wantErr: true},
		{name: "bool", input: `{"v": true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst struct {
				V FlexInt `json:"v"`
			}
			err := json.Unmarshal([]byte(tt.input), &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && dst.V.Int64() != tt.want {
				t.Errorf("value = %d, want %d", dst.V, tt.want)
			}
		})
	}
}

func TestStudentJSONOmitsPassword(t *testing.T) {
	s := Student{ID: 1, Name: "alice", PasswordHash: "secret-hash"}

	for _, v := range []interface{}{s, s.Public()} {
		body, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		var fields map[string]interface{}
		json.Unmarshal(body, &fields)
		for _, key := range []string{"password", "password_hash", "PasswordHash"} {
			if _, ok := fields[key]; ok {
				t.Errorf("%T JSON exposes %q: %s", v, key, body)
			}
		}
	}
}

func TestPublicQuestionHasNoAnswer(t *testing.T) {
	q := Question{ID: 3, QuestionText: "2+2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", CorrectOption: "B"}

	body, _ := json.Marshal(q.Public())
	var fields map[string]interface{}
	json.Unmarshal(body, &fields)

	want := []string{"id", "question", "A", "B", "C", "D"}
	if len(fields) != len(want) {
		t.Fatalf("public question fields = %v, want exactly %v", fields, want)
	}
	for _, key := range want {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing field %q in %s", key, body)
		}
	}
}

func TestNormalizeOption(t *testing.T) {
	if got := NormalizeOption(" b "); got != "B" {
		t.Errorf("NormalizeOption() = %q, want B", got)
	}
	if IsValidOption("E") {
		t.Error("E must not be a valid option")
	}
}
