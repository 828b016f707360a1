package objstore

import "testing"

func TestPublicURL_PathStyle(t *testing.T) {
	s := &S3{opts: Options{Endpoint: "http://127.0.0.1:9000/", Bucket: "endcards"}}
	got := s.PublicURL("events/abc/pic.png")
	want := "http://127.0.0.1:9000/endcards/events/abc/pic.png"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPublicURL_ConfiguredBase(t *testing.T) {
	s := &S3{opts: Options{
		Endpoint:      "http://127.0.0.1:9000",
		Bucket:        "endcards",
		PublicBaseURL: "https://cdn.example.com/endcards/",
	}}
	got := s.PublicURL("scenarios/abc/pic.png")
	want := "https://cdn.example.com/endcards/scenarios/abc/pic.png"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
