package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cv-editor/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second)
}

func TestSaveCV(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/save_cv" {
			t.Errorf("request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %q", ct)
		}
		var doc model.CVDocument
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil || doc.CVName != "Mine" {
			t.Errorf("body %+v: %v", doc, err)
		}
		io.WriteString(w, `{"success": true, "cv_id": 9, "pdf_url": "/pdf/9"}`)
	})

	res, err := c.SaveCV(context.Background(), &model.CVDocument{CVName: "Mine"})
	if err != nil {
		t.Fatalf("SaveCV: %v", err)
	}
	if res.CVID != 9 || res.PDFURL != "/pdf/9" {
		t.Fatalf("result = %+v", res)
	}
}

func TestSuccessFalseIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success": false, "error": "CV name already taken"}`)
	})

	_, err := c.SaveCV(context.Background(), &model.CVDocument{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "CV name already taken" {
		t.Fatalf("err = %v", err)
	}
}

func TestNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"success": false, "error": "CV not found"}`)
	})

	_, err := c.GetCV(context.Background(), 4)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "CV not found" {
		t.Fatalf("err = %v", err)
	}
}

func TestServerErrorWithoutEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>upstream down</html>")
	})

	err := c.DeleteCV(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway || apiErr.Message != "" {
		t.Fatalf("err = %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("502 reported as not found")
	}
}

func TestGetCV(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get_cv/3" {
			t.Errorf("path %s", r.URL.Path)
		}
		io.WriteString(w, `{"success": true, "data": {"id": 3, "name": "Three", "template_id": 2,
			"data": {"personal_info": {"name": "Ann"}, "content": {"languages": ["English"]}}}}`)
	})

	cv, err := c.GetCV(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetCV: %v", err)
	}
	if cv.ID != 3 || cv.Name != "Three" || cv.TemplateID != 2 || cv.Data.PersonalInfo.Name != "Ann" {
		t.Fatalf("cv = %+v", cv)
	}
}

func TestTemplates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/get_templates":
			io.WriteString(w, `{"success": true, "templates": [{"id": 1, "name": "Classic"}]}`)
		case "/get_template_fields/1":
			io.WriteString(w, `{"id": 1, "requires_image": true, "fields": ["objective", "skills"]}`)
		default:
			http.NotFound(w, r)
		}
	})

	ts, err := c.Templates(context.Background())
	if err != nil || len(ts) != 1 || ts[0].Name != "Classic" {
		t.Fatalf("Templates = %+v, %v", ts, err)
	}
	f, err := c.TemplateFields(context.Background(), 1)
	if err != nil || !f.RequiresImage || len(f.Fields) != 2 {
		t.Fatalf("TemplateFields = %+v, %v", f, err)
	}
}

func TestRecommend(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in RecommendRequest
		json.NewDecoder(r.Body).Decode(&in)
		if in.Field != "skills" || in.CVData == nil || in.CVData.CVName != "Mine" {
			t.Errorf("request = %+v", in)
		}
		io.WriteString(w, `{"success": true, "recommendation": "Go, SQL"}`)
	})

	text, err := c.Recommend(context.Background(), RecommendRequest{
		Field:  "skills",
		CVData: &model.CVDocument{CVName: "Mine"},
	})
	if err != nil || text != "Go, SQL" {
		t.Fatalf("Recommend = %q, %v", text, err)
	}
}

func TestUploadProfileImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/upload_profile_image" {
			t.Errorf("path %s", r.URL.Path)
		}
		f, fh, err := r.FormFile("profile_image")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		if fh.Filename != "me.png" || string(b) != "PNGDATA" {
			t.Errorf("got %s %q", fh.Filename, b)
		}
		io.WriteString(w, `{"success": true, "file_url": "/uploads/me.png", "filename": "me.png"}`)
	})

	res, err := c.UploadProfileImage(context.Background(), "me.png", strings.NewReader("PNGDATA"))
	if err != nil {
		t.Fatalf("UploadProfileImage: %v", err)
	}
	if res.FileURL != "/uploads/me.png" || res.Filename != "me.png" {
		t.Fatalf("result = %+v", res)
	}
}

func TestVocabularies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("input"); got != "ja va" {
			t.Errorf("input = %q", got)
		}
		switch r.URL.Path {
		case "/get_languages":
			io.WriteString(w, `[{"id": 1, "text": "English"}]`)
		case "/get_technologies":
			io.WriteString(w, `[{"id": 4, "text": "Java"}, {"id": 5, "text": "JavaScript"}]`)
		default:
			http.NotFound(w, r)
		}
	})

	langs, err := c.Languages(context.Background(), "ja va")
	if err != nil || len(langs) != 1 || langs[0].Text != "English" || langs[0].ID != "1" {
		t.Fatalf("Languages = %+v, %v", langs, err)
	}
	techs, err := c.Technologies(context.Background(), "ja va")
	if err != nil || len(techs) != 2 || techs[1].Text != "JavaScript" {
		t.Fatalf("Technologies = %+v, %v", techs, err)
	}
}

func TestSampleCV(t *testing.T) {
	const sample = `{"cv_name": "Sample CV"}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/samples/json-sample-file" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, sample)
	})

	b, err := c.SampleCV(context.Background())
	if err != nil || string(b) != sample {
		t.Fatalf("SampleCV = %s, %v", b, err)
	}
}
