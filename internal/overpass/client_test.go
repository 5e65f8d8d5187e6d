package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchNearby_Success(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		query = r.PostForm.Get("data")
		w.Write([]byte(`{"elements":[
			{"type":"node","id":1,"lat":40.71,"lon":-74.0,"tags":{"name":"Joe's Diner"}},
			{"type":"way","id":2,"center":{"lat":40.72,"lon":-74.01},"tags":{"name":"Mall"}}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	elements, err := client.FetchNearby(context.Background(), 40.7128, -74.0060, 5.0, "amenity=restaurant")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}
	if elements[0].Tags["name"] != "Joe's Diner" {
		t.Fatalf("unexpected first element: %+v", elements[0])
	}
	if elements[1].Center == nil || elements[1].Center.Lat != 40.72 {
		t.Fatalf("expected way center decoded: %+v", elements[1])
	}

	for _, geom := range []string{"node", "way", "relation"} {
		if !strings.Contains(query, geom+"[amenity=restaurant](around:5000,") {
			t.Fatalf("expected %s clause in query, got: %s", geom, query)
		}
	}
}

func TestFetchNearby_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	if _, err := client.FetchNearby(context.Background(), 40.7, -74.0, 5.0, "shop"); err == nil {
		t.Fatalf("expected error for upstream failure")
	}
}
