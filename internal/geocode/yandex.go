package geocode

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://geocode-maps.yandex.ru/1.x/"

// Address — населённый пункт и район по координатам.
type Address struct {
	City     string
	District string
}

// Client — обёртка над обратным геокодером Яндекс.Карт.
// Один запрос, таймаут 5 секунд, без ретраев и кэша.
type Client struct {
	APIKey  string
	DryRun  bool   // dry-run режим: без HTTP-запросов
	BaseURL string // переопределяется в тестах
	HTTP    *http.Client
}

func NewClient(apiKey string, dryRun bool) *Client {
	return &Client{
		APIKey:  apiKey,
		DryRun:  dryRun,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Форма ответа Яндекса: response -> GeoObjectCollection -> featureMember[0] ->
// GeoObject -> metaDataProperty -> GeocoderMetaData -> Address -> Components.
type yandexResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					MetaDataProperty struct {
						GeocoderMetaData struct {
							Address struct {
								Components []struct {
									Kind string `json:"kind"`
									Name string `json:"name"`
								} `json:"Components"`
							} `json:"Address"`
						} `json:"GeocoderMetaData"`
					} `json:"metaDataProperty"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Resolve — город и район по широте/долготе. Возвращает ошибку при любом сбое
// (сеть, не-2xx, кривой JSON, пустой ответ); вызывающий вправе проигнорировать
// её и использовать нулевой Address.
func (c *Client) Resolve(latitude, longitude float64) (Address, error) {
	if c.DryRun || c.APIKey == "" {
		log.Printf("[geocode][dry-run] lat=%f lon=%f", latitude, longitude)
		return Address{}, nil
	}

	params := url.Values{
		"apikey":  {c.APIKey},
		"format":  {"json"},
		"geocode": {fmt.Sprintf("%f,%f", longitude, latitude)}, // Яндекс ждёт "долгота,широта"
		"kind":    {"locality"},
		"results": {"1"},
	}

	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	resp, err := c.HTTP.Get(base + "?" + params.Encode())
	if err != nil {
		return Address{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Address{}, fmt.Errorf("geocode read body: %w", err)
	}

	var parsed yandexResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Address{}, fmt.Errorf("geocode parse response: %w", err)
	}

	members := parsed.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return Address{}, fmt.Errorf("geocode: empty feature member list")
	}

	var addr Address
	for _, comp := range members[0].GeoObject.MetaDataProperty.GeocoderMetaData.Address.Components {
		switch comp.Kind {
		case "locality":
			addr.City = comp.Name
		case "district":
			addr.District = comp.Name
		}
	}
	return addr, nil
}
