package store

// Mode values recorded for an entry. They mirror vault file modes.
const (
	ModePlain     = "plain"
	ModePadded    = "pad"
	ModeEncrypted = "enc"
)

// Entry is one indexed label.
type Entry struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Mode      string `json:"mode"`
	Length    int    `json:"length"`
	Growth    int    `json:"growth"`
	WordMode  bool   `json:"word_mode"`
	KDF       string `json:"kdf"`
	File      string `json:"file"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
