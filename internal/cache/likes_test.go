package cache

import (
	"context"
	"testing"
)

func TestLoadLikesMissingKey(t *testing.T) {
	likes := LoadLikes(context.Background(), NewMemoryStore())
	if len(likes) != 0 {
		t.Fatalf("expected empty map got %v", likes)
	}
}

func TestLoadLikesCorruptPayloadFailsOpen(t *testing.T) {
	kv := NewMemoryStore()
	if err := kv.Set(KeyLikes, "][ nope"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	likes := LoadLikes(context.Background(), kv)
	if len(likes) != 0 {
		t.Fatalf("expected corrupt payload to read as empty got %v", likes)
	}
}

func TestSaveLoadLikesRoundTrip(t *testing.T) {
	kv := NewMemoryStore()
	if err := SaveLikes(kv, map[string]int{"photo-1": 2, "photo-2": 0}); err != nil {
		t.Fatalf("save: %v", err)
	}

	likes := LoadLikes(context.Background(), kv)
	if likes["photo-1"] != 2 || likes["photo-2"] != 0 {
		t.Fatalf("unexpected round trip %v", likes)
	}
}
