package domain

// UserContext describes input from an ad request: who is viewing, on what
// device, where and in which app. The HTTP layer constructs it per request;
// it is never persisted.
type UserContext struct {
	UserID      string   `json:"user_id,omitempty"`
	OS          string   `json:"os,omitempty"`
	OSVersion   string   `json:"os_version,omitempty"`
	Device      string   `json:"device,omitempty"`
	DeviceBrand string   `json:"device_brand,omitempty"`
	Browser     string   `json:"browser,omitempty"`
	IP          string   `json:"ip,omitempty"`
	Country     string   `json:"country,omitempty"`
	Region      string   `json:"region,omitempty"`
	City        string   `json:"city,omitempty"`
	AppID       string   `json:"app_id,omitempty"`
	AppName     string   `json:"app_name,omitempty"`
	Age         int      `json:"age,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Interests   []string `json:"interests,omitempty"`
}
