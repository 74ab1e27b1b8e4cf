package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

type Password string

func (p Password) MarshalText() ([]byte, error) {
	return []byte("*************"), nil
}

func (p *Password) UnmarshalText(text []byte) (err error) {
	pw := string(text)
	p = (*Password)(&pw)
	return nil
}

type HTTPProtocol string

const (
	HTTPS HTTPProtocol = "https"
	HTTP  HTTPProtocol = "http"
)

func DecodeStruct[E any](source map[string]interface{}) (E, error) {
	var target E
	err := mapstructure.Decode(source, &target)
	if err != nil {
		var zero E
		return zero, fmt.Errorf("could not decode struct: %w", err)
	}
	return target, nil
}

func EncodeStruct[E any](source E) (map[string]interface{}, error) {
	var target map[string]interface{}
	err := mapstructure.Decode(source, &target)
	if err != nil {
		return nil, fmt.Errorf("could not decode struct: %w", err)
	}
	return target, nil
}
