package domain

import "github.com/supabase-community/supabase-go"

// SupabaseClient wraps the Supabase connection used for durable storage.
type SupabaseClient interface {
	Initialize() error

	DB() *supabase.Client
}
