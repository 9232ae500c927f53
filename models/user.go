package models

type User struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Address         string `json:"address,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}
