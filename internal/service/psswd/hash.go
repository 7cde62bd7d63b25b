// Package psswd хеширование ПИН-кодов. ПИН хранится только в виде bcrypt-хеша.
package psswd

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type PinHash string

func (p PinHash) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing pin: %s", err.Error())
	}
	return string(bytes), nil
}

func (p PinHash) ComparePassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
