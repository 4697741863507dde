package strategy

import (
	"testing"

	"github.com/wudi/edgeconfig/config"
)

func TestWAFDefaults(t *testing.T) {
	cfg := &config.Config{WAF: []config.WAF{{Name: "baseline"}}}
	m, err := Dispatch(cfg, nil)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	w := m.WAF[0]
	if w.Mode != "counting" || !w.Active {
		t.Errorf("mode/active defaults: %q/%v", w.Mode, w.Active)
	}
	if w.BypassAddresses == nil || len(w.BypassAddresses) != 0 {
		t.Errorf("bypass addresses should be an empty array: %v", w.BypassAddresses)
	}
	if w.SQLInjection || w.CrossSiteScripting {
		t.Error("threat families should default off")
	}
	if w.SQLInjectionSensitivity != "medium" || w.FileUploadSensitivity != "medium" {
		t.Errorf("disabled threats still carry medium sensitivity: %q/%q",
			w.SQLInjectionSensitivity, w.FileUploadSensitivity)
	}
}

func TestWAFThreatMaterialization(t *testing.T) {
	cfg := &config.Config{WAF: []config.WAF{{
		Name:               "strict",
		Mode:               "blocking",
		SQLInjection:       &config.WAFThreat{Sensitivity: "highest"},
		CrossSiteScripting: &config.WAFThreat{},
	}}}
	m, err := Dispatch(cfg, nil)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	w := m.WAF[0]
	if w.Mode != "blocking" {
		t.Errorf("mode: %q", w.Mode)
	}
	if !w.SQLInjection || w.SQLInjectionSensitivity != "highest" {
		t.Errorf("sql injection: %v/%q", w.SQLInjection, w.SQLInjectionSensitivity)
	}
	// Presence enables the family; sensitivity falls back to medium.
	if !w.CrossSiteScripting || w.CrossSiteScriptingSensitivity != "medium" {
		t.Errorf("xss: %v/%q", w.CrossSiteScripting, w.CrossSiteScriptingSensitivity)
	}
	if w.DirectoryTraversal {
		t.Error("undeclared threat should stay off")
	}
}

func TestWAFRoundTrip(t *testing.T) {
	cfg := &config.Config{WAF: []config.WAF{{
		Name:            "strict",
		Mode:            "blocking",
		SQLInjection:    &config.WAFThreat{Sensitivity: "high"},
		BypassAddresses: []string{"10.0.0.1"},
	}}}
	m, err := Dispatch(cfg, nil)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	back, err := DispatchReverse(m, nil)
	if err != nil {
		t.Fatalf("reverse dispatch failed: %v", err)
	}

	w := back.WAF[0]
	if w.SQLInjection == nil || w.SQLInjection.Sensitivity != "high" {
		t.Errorf("sql injection lost: %+v", w.SQLInjection)
	}
	if w.CrossSiteScripting != nil {
		t.Error("disabled threat should come back absent")
	}
	if len(w.BypassAddresses) != 1 || w.BypassAddresses[0] != "10.0.0.1" {
		t.Errorf("bypass addresses lost: %v", w.BypassAddresses)
	}
}
