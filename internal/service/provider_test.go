package service

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"medha_campus_server/internal/config"
	"medha_campus_server/internal/dao/kv"
	"medha_campus_server/internal/dao/mockdata"
	"medha_campus_server/internal/model"
	"medha_campus_server/internal/service/auth"
)

func TestNewServicesWiresSessionAudit(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(prev)

	store := mockdata.NewStore(kv.NewMemoryKV())
	svcs := NewServices(store, nil, &config.GeminiConfig{})

	svcs.Sessions.Notify(auth.SessionEvent{
		Type:    auth.SessionSignedIn,
		Account: &model.Account{Uuid: "U_AUDIT", Email: "audit@rgukt.ac.in"},
	})

	entries := logs.FilterMessage("session audit").All()
	if len(entries) != 1 {
		t.Fatalf("session audit entries = %d, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["user_id"] != "U_AUDIT" {
		t.Fatalf("user_id field = %v", ctx["user_id"])
	}
	if ctx["type"] != string(auth.SessionSignedIn) {
		t.Fatalf("type field = %v", ctx["type"])
	}
}
