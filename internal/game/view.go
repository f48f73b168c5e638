package game

import "github.com/cardroom/holdem/internal/deck"

// PlayerView is the projection of one seat into an observer's view.
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Seat      int    `json:"seat"`
	Chips     int    `json:"chips"`

	Bet      int `json:"bet"`
	TotalBet int `json:"totalBet"`

	Folded       bool `json:"folded"`
	AllIn        bool `json:"allIn"`
	Active       bool `json:"active"`
	IsDealer     bool `json:"isDealer"`
	IsSmallBlind bool `json:"isSmallBlind"`
	IsBigBlind   bool `json:"isBigBlind"`

	// HasCards stays true when the hole cards themselves are hidden.
	HasCards  bool        `json:"hasCards"`
	HoleCards []deck.Card `json:"holeCards,omitempty"`

	LastAction string `json:"lastAction,omitempty"`
}

// WinnerView is one payout line of the showdown or fold-win result. For
// fold-only wins HandDesc is "uncontested" and BestFive stays empty: no
// cards are revealed and no rank is fabricated.
type WinnerView struct {
	PlayerID string      `json:"playerId"`
	Amount   int         `json:"amount"`
	HandDesc string      `json:"handRank"`
	BestFive []deck.Card `json:"bestFive,omitempty"`
}

// TableView is the projection of a table's authoritative state. A view
// produced by Table.View is already sanitized for its observer; Sanitize is
// idempotent over it.
type TableView struct {
	TableID    string `json:"tableId"`
	Stage      string `json:"stage"`
	HandNum    int    `json:"handNum"`
	HandActive bool   `json:"handActive"`

	MaxPlayers int `json:"maxPlayers"`
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`

	Seats     []*PlayerView `json:"seats"`
	Community []deck.Card   `json:"communityCards"`

	Pots     []Pot `json:"pots"`
	TotalPot int   `json:"totalPot"`

	DealerSeat     int `json:"dealerSeat"`
	SmallBlindSeat int `json:"smallBlindSeat"`
	BigBlindSeat   int `json:"bigBlindSeat"`
	CurrentSeat    int `json:"currentSeat"`

	CurrentBet int `json:"currentBet"`
	MinRaise   int `json:"minRaise"`

	LastAction *ActionRecord `json:"lastAction,omitempty"`
	Winners    []WinnerView  `json:"winners,omitempty"`
}

// Sanitize projects a view for a specific observer: every other player's
// hole cards are removed, leaving only whether they hold cards. Deck
// contents never reach a view in the first place. Pure function of
// (view, observerID); applying it twice is the same as applying it once.
func Sanitize(v TableView, observerID string) TableView {
	out := v
	out.Seats = make([]*PlayerView, len(v.Seats))
	for i, pv := range v.Seats {
		if pv == nil {
			continue
		}
		cp := *pv
		if cp.ID != observerID {
			cp.HoleCards = nil
		}
		out.Seats[i] = &cp
	}
	return out
}
