// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package validation

import (
	"strings"
	"sync"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type idStruct struct {
	Show    string `validate:"omitempty,showid"`
	Episode string `validate:"omitempty,episodeid"`
	Lookup  string `validate:"omitempty,lookupid"`
	User    string `validate:"omitempty,userid"`
}

func TestCustomValidators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   idStruct
		wantTag string
	}{
		{"valid show", idStruct{Show: "tt0903747"}, ""},
		{"show without digits", idStruct{Show: "tt"}, "showid"},
		{"show with letters", idStruct{Show: "tt09a"}, "showid"},
		{"show wrong prefix", idStruct{Show: "nm123"}, "showid"},
		{"valid episode", idStruct{Episode: "tt0903747:1:2"}, ""},
		{"episode missing part", idStruct{Episode: "tt0903747:1"}, "episodeid"},
		{"episode negative", idStruct{Episode: "tt0903747:-1:2"}, "episodeid"},
		{"lookup imdb", idStruct{Lookup: "tt123"}, ""},
		{"lookup tvmaze", idStruct{Lookup: "tvmaze:169"}, ""},
		{"lookup tvdb upper", idStruct{Lookup: "TVDB:81189"}, ""},
		{"lookup unknown source", idStruct{Lookup: "tmdb:1396"}, "lookupid"},
		{"lookup non numeric", idStruct{Lookup: "tvmaze:abc"}, "lookupid"},
		{"valid user", idStruct{User: "user-42@example"}, ""},
		{"user with slash", idStruct{User: "a/b"}, "userid"},
		{"user with control", idStruct{User: "a\nb"}, "userid"},
		{"user too long", idStruct{User: strings.Repeat("u", 129)}, "userid"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if tt.wantTag == "" {
				if err != nil {
					t.Errorf("ValidateStruct() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateStruct() = nil, want %s error", tt.wantTag)
			}
			errs := err.Errors()
			if len(errs) != 1 || errs[0].Tag() != tt.wantTag {
				t.Errorf("errors = %+v, want single %s error", errs, tt.wantTag)
			}
		})
	}
}

type requestStruct struct {
	Query   string `validate:"required,max=10"`
	Limit   int    `validate:"min=0,max=500"`
	Poster  string `validate:"omitempty,url"`
	Seasons []int  `validate:"max=3"`
}

func TestValidateStruct_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   requestStruct
		wantMsg string
	}{
		{"required", requestStruct{}, "Query is required"},
		{"string max", requestStruct{Query: strings.Repeat("x", 11)}, "Query must be at most 10 characters"},
		{"numeric max", requestStruct{Query: "ok", Limit: 501}, "Limit must be at most 500"},
		{"numeric min", requestStruct{Query: "ok", Limit: -1}, "Limit must be at least 0"},
		{"url", requestStruct{Query: "ok", Poster: "not a url"}, "Poster must be a valid URL"},
		{"slice max", requestStruct{Query: "ok", Seasons: []int{1, 2, 3, 4}}, "Seasons must be at most 3 items"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	req := requestStruct{Query: "breaking", Limit: 20, Poster: "https://img.example/p.jpg", Seasons: []int{1, 2}}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() error = %v", err)
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	t.Run("single error", func(t *testing.T) {
		t.Parallel()
		err := ValidateStruct(&requestStruct{})
		apiErr := err.ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		if apiErr.Details["field"] != "Query" || apiErr.Details["tag"] != "required" {
			t.Errorf("Details = %v", apiErr.Details)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		t.Parallel()
		err := ValidateStruct(&requestStruct{Limit: 1000, Seasons: []int{1, 2, 3, 4}})
		apiErr := err.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 3 {
			t.Fatalf("Details[fields] = %v, want 3 entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "Query: Query is required") {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

func TestValidateStruct_Concurrent(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := idStruct{Show: "tt1", Episode: "tt1:1:1"}
			if i%2 == 0 {
				req.Show = "bad"
			}
			err := ValidateStruct(&req)
			if (i%2 == 0) != (err != nil) {
				t.Errorf("goroutine %d: unexpected result %v", i, err)
			}
		}(i)
	}
	wg.Wait()
}
