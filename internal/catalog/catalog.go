// Package catalog holds the cities and places that can be booked. It is read
// once at startup from the site's data.json document.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"visitBooker/internal/models"
)

type document struct {
	Cities []struct {
		Name     string `json:"name"`
		CityData struct {
			Description string `json:"description"`
		} `json:"citydata"`
		Places []struct {
			Name    string `json:"name"`
			Details struct {
				Description string `json:"description"`
				Location    string `json:"location"`
			} `json:"details"`
		} `json:"places"`
	} `json:"cities"`
}

type Catalog struct {
	cities []models.City
	places map[string]models.Place
}

func Load(path string) (*Catalog, error) {
	const op = "catalog.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := &Catalog{places: make(map[string]models.Place)}

	for _, dc := range doc.Cities {
		city := models.City{Name: dc.Name, Description: dc.CityData.Description}

		for _, dp := range dc.Places {
			p := models.Place{
				Key:         Key(dc.Name, dp.Name),
				Name:        dp.Name,
				City:        dc.Name,
				Description: dp.Details.Description,
				Location:    dp.Details.Location,
			}
			if _, dup := c.places[p.Key]; dup {
				return nil, fmt.Errorf("duplicate place key %q", p.Key)
			}

			c.places[p.Key] = p
			city.Places = append(city.Places, p)
		}

		c.cities = append(c.cities, city)
	}

	return c, nil
}

// Key builds the stable place key from a city and a place name, e.g.
// "Luxor/Karnak-Temple".
func Key(city, place string) string {
	return city + "/" + Slug(place)
}

func Slug(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "-")
}

func (c *Catalog) Cities() []models.City {
	return c.cities
}

func (c *Catalog) Place(key string) (models.Place, bool) {
	p, ok := c.places[key]
	return p, ok
}
