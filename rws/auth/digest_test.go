package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseAuthParams(t *testing.T) {
	got := parseAuthParams(`realm="testrealm@host.com", qop="auth,auth-int", nonce="dcd98b7102dd2f0e", opaque="5ccc069c403ebaf9", algorithm=MD5`)

	want := map[string]string{
		"realm":     "testrealm@host.com",
		"qop":       "auth,auth-int",
		"nonce":     "dcd98b7102dd2f0e",
		"opaque":    "5ccc069c403ebaf9",
		"algorithm": "MD5",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("param %q = %q, want %q", k, got[k], v)
		}
	}
}

func TestParseAuthParamsQuotedEscapes(t *testing.T) {
	got := parseAuthParams(`realm="a \"quoted\" realm", nonce="n,with,commas"`)
	if got["realm"] != `a "quoted" realm` {
		t.Errorf("realm = %q", got["realm"])
	}
	if got["nonce"] != "n,with,commas" {
		t.Errorf("nonce = %q", got["nonce"])
	}
}

func TestParseDigestChallenge(t *testing.T) {
	ch, err := parseDigestChallenge([]string{
		`Basic realm="ignored"`,
		`Digest realm="controller", nonce="abc", qop="auth,auth-int"`,
	})
	if err != nil {
		t.Fatalf("parseDigestChallenge failed: %v", err)
	}
	if ch.realm != "controller" || ch.nonce != "abc" {
		t.Errorf("challenge = %+v", ch)
	}
	if ch.algorithm != "MD5" {
		t.Errorf("algorithm = %q, want MD5 default", ch.algorithm)
	}
	if ch.qop != "auth" {
		t.Errorf("qop = %q, want auth", ch.qop)
	}
}

func TestParseDigestChallengeNoDigest(t *testing.T) {
	if _, err := parseDigestChallenge([]string{`Basic realm="x"`}); !errors.Is(err, ErrNoChallenge) {
		t.Errorf("err = %v, want ErrNoChallenge", err)
	}
}

func TestParseDigestChallengeMissingNonce(t *testing.T) {
	if _, err := parseDigestChallenge([]string{`Digest realm="x"`}); err == nil {
		t.Error("expected error for challenge without nonce")
	}
}

// Reference vectors from RFC 7616 section 3.9.1: same request answered with
// MD5 and SHA-256.
func TestDigestAnswerRFC7616(t *testing.T) {
	creds := Credentials{Username: "Mufasa", Password: "Circle of Life"}
	const (
		uri    = "/dir/index.html"
		cnonce = "f2/wE4q74E6zIJEtWaHKaf5wv/H5QzzpXusqGemxURZJ"
	)

	tests := []struct {
		algorithm string
		want      string
	}{
		{"MD5", "8ca523f5e9506fed4657c9700eebdbec"},
		{"SHA-256", "753927fa0e85d155564e2e272a28d1802ca10daf4496794697cf8db5856cb6c1"},
	}
	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			ch := &digestChallenge{
				realm:     "http-auth@example.org",
				nonce:     "7ypf/xlj9XXwfDPEoM4URrv/xwf94BcCAzFZH4GiTo0v",
				opaque:    "FQhe/qaU925kfnzjCev0ciny7QMkPqMAFRtzCUYo5tdS",
				algorithm: tt.algorithm,
				qop:       "auth",
			}
			header, err := ch.answer(creds, http.MethodGet, uri, cnonce, 1)
			if err != nil {
				t.Fatalf("answer failed: %v", err)
			}
			params := parseAuthParams(strings.TrimPrefix(header, "Digest "))
			if params["response"] != tt.want {
				t.Errorf("response = %q, want %q", params["response"], tt.want)
			}
			if params["nc"] != "00000001" {
				t.Errorf("nc = %q, want 00000001", params["nc"])
			}
			if params["uri"] != uri {
				t.Errorf("uri = %q, want %q", params["uri"], uri)
			}
		})
	}
}

func TestDigestAnswerUnsupportedAlgorithm(t *testing.T) {
	ch := &digestChallenge{realm: "r", nonce: "n", algorithm: "TOKEN"}
	if _, err := ch.answer(Credentials{Username: "u", Password: "p"}, "GET", "/", "c", 1); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
}

// digestServer answers 401 with a Digest challenge until the client presents
// an Authorization header, recording the nc of each authorized request.
type digestServer struct {
	nonce    string
	requests int
	ncs      []string
}

func (s *digestServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.requests++
	authz := r.Header.Get("Authorization")
	if authz == "" {
		w.Header().Set("WWW-Authenticate",
			fmt.Sprintf(`Digest realm="controller", nonce=%q, qop="auth", algorithm=MD5`, s.nonce))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	params := parseAuthParams(strings.TrimPrefix(authz, "Digest "))
	if params["nonce"] != s.nonce {
		// Stale nonce, force a fresh handshake.
		w.Header().Set("WWW-Authenticate",
			fmt.Sprintf(`Digest realm="controller", nonce=%q, qop="auth", algorithm=MD5`, s.nonce))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	s.ncs = append(s.ncs, params["nc"])
	w.WriteHeader(http.StatusOK)
}

func TestDigestTransportHandshake(t *testing.T) {
	ds := &digestServer{nonce: "nonce-1"}
	srv := httptest.NewServer(ds)
	defer srv.Close()

	a := NewDigestAuth(Credentials{Username: "Default User", Password: "robotics"})
	client := &http.Client{Transport: a.Transport(http.DefaultTransport)}

	// First request handshakes: one 401 plus the authorized replay.
	resp, err := client.Get(srv.URL + "/rw/system")
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first request status = %d", resp.StatusCode)
	}
	if ds.requests != 2 {
		t.Errorf("handshake took %d requests, want 2", ds.requests)
	}

	// Second request authenticates preemptively with the cached challenge.
	resp, err = client.Get(srv.URL + "/rw/system")
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}
	resp.Body.Close()
	if ds.requests != 3 {
		t.Errorf("preemptive request took %d extra requests, want 1", ds.requests-2)
	}

	if len(ds.ncs) != 2 || ds.ncs[0] != "00000001" || ds.ncs[1] != "00000002" {
		t.Errorf("nc sequence = %v, want [00000001 00000002]", ds.ncs)
	}
}

func TestDigestTransportStaleNonce(t *testing.T) {
	ds := &digestServer{nonce: "nonce-1"}
	srv := httptest.NewServer(ds)
	defer srv.Close()

	a := NewDigestAuth(Credentials{Username: "Default User", Password: "robotics"})
	client := &http.Client{Transport: a.Transport(http.DefaultTransport)}

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	// Expire the session; the cached preemptive attempt gets a 401 and the
	// transport must recover with a new handshake.
	ds.nonce = "nonce-2"
	resp, err = client.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status after nonce rotation = %d, want 200", resp.StatusCode)
	}
}

func TestDigestAuthName(t *testing.T) {
	if name := NewDigestAuth(Credentials{}).Name(); name != "Digest" {
		t.Errorf("Name() = %q, want Digest", name)
	}
}
