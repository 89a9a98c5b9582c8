package auth

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBasicAuthHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	a := NewBasicAuth(Credentials{Username: "Default User", Password: "robotics"})
	client := &http.Client{Transport: a.Transport(http.DefaultTransport)}
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("Default User:robotics"))
	if got != want {
		t.Errorf("Authorization = %q, want %q", got, want)
	}
}

func TestBasicAuthDoesNotMutateRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	a := NewBasicAuth(Credentials{Username: "u", Password: "p"})
	rt := a.Transport(http.DefaultTransport)

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	resp.Body.Close()

	if h := req.Header.Get("Authorization"); h != "" {
		t.Errorf("original request gained Authorization header %q", h)
	}
}

func TestBasicAuthName(t *testing.T) {
	if name := NewBasicAuth(Credentials{}).Name(); name != "Basic" {
		t.Errorf("Name() = %q, want Basic", name)
	}
}

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{"valid", Credentials{Username: "Default User", Password: "robotics"}, false},
		{"missing username", Credentials{Password: "robotics"}, true},
		{"missing password", Credentials{Username: "Default User"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
