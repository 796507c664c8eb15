package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Simplici0/breakeven/internal/apperr"
)

const dealFieldName = "deal"

// deal is one shuffled hand of quiz cards. It travels with the quiz form as a signed
// token, so the server keeps no per-learner state.
type deal struct {
	ID      uuid.UUID
	CardIDs []int
}

type dealSigner struct {
	secret []byte
}

func newDealSigner(secret string) *dealSigner {
	return &dealSigner{secret: []byte(secret)}
}

func (d *dealSigner) sign(dl deal) string {
	ids := make([]string, 0, len(dl.CardIDs))
	for _, id := range dl.CardIDs {
		ids = append(ids, strconv.Itoa(id))
	}
	payload := base64.RawURLEncoding.EncodeToString([]byte(dl.ID.String() + ":" + strings.Join(ids, ",")))
	return payload + "." + d.mac(payload)
}

func (d *dealSigner) verify(value string) (deal, error) {
	invalid := apperr.Input("quiz deal is invalid; start a new one")

	payload, signature, ok := strings.Cut(value, ".")
	if !ok {
		return deal{}, invalid
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return deal{}, invalid
	}
	expected, _ := hex.DecodeString(d.mac(payload))
	if !hmac.Equal(provided, expected) {
		return deal{}, invalid
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return deal{}, invalid
	}
	rawID, rawCards, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return deal{}, invalid
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return deal{}, invalid
	}

	dl := deal{ID: id}
	for _, part := range strings.Split(rawCards, ",") {
		if part == "" {
			continue
		}
		cardID, err := strconv.Atoi(part)
		if err != nil {
			return deal{}, invalid
		}
		dl.CardIDs = append(dl.CardIDs, cardID)
	}
	return dl, nil
}

func (d *dealSigner) mac(payload string) string {
	mac := hmac.New(sha256.New, d.secret)
	_, _ = mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
