package model

// TurnExport is a single turn in an exported transcript.
type TurnExport struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// SessionExport is one tutoring session in the export output.
type SessionExport struct {
	SessionID  string       `json:"session_id"`
	Accessible bool         `json:"accessible"`
	CreatedAt  string       `json:"created_at"`
	Turns      []TurnExport `json:"turns"`
}

// TranscriptExport is the top-level export document.
type TranscriptExport struct {
	ExportedAt string          `json:"exported_at"`
	Sessions   []SessionExport `json:"sessions"`
	Grades     []GradeRecord   `json:"grades"`
}
