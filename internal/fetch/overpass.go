package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/hospital"
)

// DefaultOverpassEndpoint is the public Overpass API interpreter.
const DefaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

// overpassQuery asks for every hospital and clinic inside the Moroccan
// national boundary. Ways and relations answer with their center point.
const overpassQuery = `[out:json][timeout:90];
area["ISO3166-1"="MA"][admin_level=2]->.ma;
(
  node["amenity"="hospital"](area.ma);
  way["amenity"="hospital"](area.ma);
  relation["amenity"="hospital"](area.ma);
  node["amenity"="clinic"](area.ma);
  way["amenity"="clinic"](area.ma);
);
out center tags;`

// Overpass request times are dominated by server-side query execution,
// not transfer.
var overpassClient = &http.Client{Timeout: 120 * time.Second}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Overpass fetches Morocco's hospitals and clinics from the Overpass
// API. Unnamed elements are dropped; cities come back raw from the
// addr:city tag. A nil client uses the package default; an empty
// endpoint uses the public interpreter.
func Overpass(ctx context.Context, client *http.Client, endpoint string) ([]hospital.Record, error) {
	if client == nil {
		client = overpassClient
	}
	if endpoint == "" {
		endpoint = DefaultOverpassEndpoint
	}

	form := url.Values{"data": {overpassQuery}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass POST %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass POST %s: status %d", endpoint, resp.StatusCode)
	}

	var decoded overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding overpass response: %w", err)
	}

	var out []hospital.Record
	var id int64
	for _, el := range decoded.Elements {
		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			continue
		}
		lat, lon := el.Lat, el.Lon
		if el.Center != nil {
			lat, lon = el.Center.Lat, el.Center.Lon
		}
		id++
		out = append(out, hospital.Record{
			ID:       id,
			Name:     name,
			Category: el.Tags["amenity"],
			City:     strings.TrimSpace(el.Tags["addr:city"]),
			Source:   "osm",
			Lat:      lat,
			Lon:      lon,
		})
	}
	return out, nil
}
