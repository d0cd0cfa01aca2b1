package models

// AgeRange survey buckets.
type AgeRange string

const (
	AgeUnder18 AgeRange = "under_18"
	Age18To30  AgeRange = "18_30"
	Age31To50  AgeRange = "31_50"
	Age51To65  AgeRange = "51_65"
	AgeOver65  AgeRange = "over_65"
)

// Valid reports whether the value is one of the survey buckets. The empty
// string is valid: the survey is optional until completed.
func (a AgeRange) Valid() bool {
	switch a {
	case "", AgeUnder18, Age18To30, Age31To50, Age51To65, AgeOver65:
		return true
	}
	return false
}

// Gender survey options.
type Gender string

const (
	GenderFemale       Gender = "female"
	GenderMale         Gender = "male"
	GenderNonBinary    Gender = "non_binary"
	GenderPreferNotSay Gender = "prefer_not_say"
)

// Valid reports whether the value is a known option or empty.
func (g Gender) Valid() bool {
	switch g {
	case "", GenderFemale, GenderMale, GenderNonBinary, GenderPreferNotSay:
		return true
	}
	return false
}

// Barrio — Bilbao neighborhood options for the demographic survey.
type Barrio string

const (
	BarrioSanIgnacio     Barrio = "san_ignacio"
	BarrioAbando         Barrio = "abando"
	BarrioBasurto        Barrio = "basurto"
	BarrioBegona         Barrio = "begona"
	BarrioDeusto         Barrio = "deusto"
	BarrioErrekaldeberri Barrio = "errekaldeberri"
	BarrioIndautxu       Barrio = "indautxu"
	BarrioIralabarri     Barrio = "iralabarri"
	BarrioOtxarkoaga     Barrio = "otxarkoaga"
	BarrioRekalde        Barrio = "rekalde"
	BarrioSantutxu       Barrio = "santutxu"
	BarrioTxurdinaga     Barrio = "txurdinaga"
	BarrioOtro           Barrio = "otro"
)

// Valid reports whether the value is a known neighborhood or empty.
func (b Barrio) Valid() bool {
	switch b {
	case "", BarrioSanIgnacio, BarrioAbando, BarrioBasurto, BarrioBegona,
		BarrioDeusto, BarrioErrekaldeberri, BarrioIndautxu, BarrioIralabarri,
		BarrioOtxarkoaga, BarrioRekalde, BarrioSantutxu, BarrioTxurdinaga,
		BarrioOtro:
		return true
	}
	return false
}

// UserProfile is the user identity plus the one-time demographic survey.
// ProfileCompleted gates access to gameplay. Timestamps are RFC 3339 strings
// so the persisted JSON matches across both storage backends.
type UserProfile struct {
	ID               string   `json:"id"`
	DisplayName      string   `json:"displayName"`
	AvatarURL        string   `json:"avatarUrl,omitempty"`
	AgeRange         AgeRange `json:"ageRange,omitempty"`
	Gender           Gender   `json:"gender,omitempty"`
	Barrio           Barrio   `json:"barrio,omitempty"`
	ProfileCompleted bool     `json:"profileCompleted"`
	CreatedAt        string   `json:"createdAt"`
	LastLoginAt      string   `json:"lastLoginAt"`
}
