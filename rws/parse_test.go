package rws

import (
	"testing"
)

const signalListXHTML = `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>io</title><base href="http://localhost/rw/iosystem/"/></head>
<body>
<div class="state">
<ul>
<li class="ios-signal li-item" title="DO_GRIPPER">
<a href="/rw/iosystem/signals/Local/DRV_1/DO_GRIPPER;state" rel="self"></a>
<span class="name">DO_GRIPPER</span>
<span class="type">DO</span>
<span class="lvalue">1</span>
<span class="lstate">not simulated</span>
</li>
<li class="ios-signal li-item" title="AI_PRESSURE">
<a href="/rw/iosystem/signals/Local/DRV_1/AI_PRESSURE;state" rel="self"></a>
<span class="name">AI_PRESSURE</span>
<span class="type">AI</span>
<span class="lvalue">2.5</span>
<span class="lstate">not simulated</span>
</li>
</ul>
</div>
</body>
</html>`

const errorXHTML = `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<body>
<div class="status">
<h3>Error</h3>
<span class="code">-1073445848</span>
<span class="msg">Mastership is held by another client</span>
</div>
</body>
</html>`

func TestParseResources(t *testing.T) {
	resources, err := parseResources([]byte(signalListXHTML))
	if err != nil {
		t.Fatalf("parseResources failed: %v", err)
	}
	if len(resources) != 2 {
		t.Fatalf("got %d resources, want 2", len(resources))
	}

	r := resources[0]
	if r.Class != "ios-signal" {
		t.Errorf("Class = %q, want ios-signal", r.Class)
	}
	if r.Title != "DO_GRIPPER" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Self != "/rw/iosystem/signals/Local/DRV_1/DO_GRIPPER;state" {
		t.Errorf("Self = %q", r.Self)
	}
	if r.Field("type") != "DO" {
		t.Errorf("type = %q, want DO", r.Field("type"))
	}
	if v, err := r.Float("lvalue"); err != nil || v != 1 {
		t.Errorf("lvalue = %v (%v), want 1", v, err)
	}
}

func TestParseResourceSelectsClass(t *testing.T) {
	r, err := parseResource([]byte(signalListXHTML), "ios-signal")
	if err != nil {
		t.Fatalf("parseResource failed: %v", err)
	}
	if r.Title != "DO_GRIPPER" {
		t.Errorf("Title = %q, want first match", r.Title)
	}

	if _, err := parseResource([]byte(signalListXHTML), "rap-data"); err == nil {
		t.Error("expected error for absent class")
	}
}

func TestParseResourcesRejectsGarbage(t *testing.T) {
	if _, err := parseResources([]byte("not xml at all <")); err == nil {
		t.Error("expected parse error")
	}
}

func TestResourceFieldAccessors(t *testing.T) {
	r := &Resource{Class: "test", Fields: map[string]string{"n": "42", "f": "1.5", "bad": "x"}}

	if v, err := r.Int("n"); err != nil || v != 42 {
		t.Errorf("Int(n) = %d (%v)", v, err)
	}
	if v, err := r.Float("f"); err != nil || v != 1.5 {
		t.Errorf("Float(f) = %v (%v)", v, err)
	}
	if _, err := r.Int("bad"); err == nil {
		t.Error("Int(bad) should fail")
	}
	if _, err := r.Float("missing"); err == nil {
		t.Error("Float(missing) should fail")
	}
	if r.Field("missing") != "" {
		t.Error("Field(missing) should be empty")
	}
}

func TestFirstClassToken(t *testing.T) {
	tests := []struct{ in, want string }{
		{"ios-signal li-item", "ios-signal"},
		{"rap-data", "rap-data"},
		{"  padded token", "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := firstClassToken(tt.in); got != tt.want {
			t.Errorf("firstClassToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSpanMap(t *testing.T) {
	fields := parseSpanMap([]byte(errorXHTML))
	if fields["code"] != "-1073445848" {
		t.Errorf("code = %q", fields["code"])
	}
	if fields["msg"] != "Mastership is held by another client" {
		t.Errorf("msg = %q", fields["msg"])
	}
}
