package repository

import "strings"

// TokenKey is the fixed storage key of the bearer token
const TokenKey = "access_token"

type tokenDocument struct {
	AccessToken string `json:"access_token"`
}

// TokenRepository persists the bearer token
type TokenRepository struct {
	storage *FileStorage
}

func NewTokenRepository(storage *FileStorage) *TokenRepository {
	return &TokenRepository{storage: storage}
}

func (r *TokenRepository) Load() (string, error) {
	var doc tokenDocument
	found, err := r.storage.Read(TokenKey, &doc)
	if err != nil || !found {
		return "", err
	}
	return strings.TrimSpace(doc.AccessToken), nil
}

func (r *TokenRepository) Save(token string) error {
	return r.storage.Write(TokenKey, tokenDocument{AccessToken: strings.TrimSpace(token)})
}

func (r *TokenRepository) Clear() error {
	return r.storage.Remove(TokenKey)
}
