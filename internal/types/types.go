package types

// Credentials is the document stored in ~/.claude/.credentials.json and,
// on macOS, as the secret of the Claude Code keychain entry.
type Credentials struct {
	ClaudeAiOauth *OAuthCredentials `json:"claudeAiOauth"`
}

// OAuthCredentials contains the OAuth token data
type OAuthCredentials struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	ExpiresAt    int64    `json:"expiresAt"`
	Scopes       []string `json:"scopes,omitempty"`

	// Informational; not required to authenticate.
	SubscriptionType string `json:"subscriptionType,omitempty"`
	RateLimitTier    string `json:"rateLimitTier,omitempty"`
}

// UsageResponse is the API response from Anthropic
type UsageResponse struct {
	FiveHour       UsageMetric  `json:"five_hour"`
	SevenDay       UsageMetric  `json:"seven_day"`
	SevenDayOpus   *UsageMetric `json:"seven_day_opus"`
	SevenDaySonnet *UsageMetric `json:"seven_day_sonnet"`
}

// UsageMetric represents a usage time window
type UsageMetric struct {
	Utilization float64 `json:"utilization"`
	ResetsAt    *string `json:"resets_at"`
}

// AuthStatus describes the health of the local credentials. It never carries
// token material.
type AuthStatus struct {
	Authenticated   bool    `json:"authenticated"`
	ExpiresAt       *int64  `json:"expires_at"`
	CredentialsPath string  `json:"credentials_path"`
	ErrorReason     *string `json:"error_reason"`
}
