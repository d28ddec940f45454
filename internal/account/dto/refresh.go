package dto

type RefreshInput struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenPairOutput struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
