package main

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/segrule/lang"
)

// wireUser is the on-disk shape of a user record: plain maps and slices
// that decode cleanly from either JSON or YAML, converted to
// [lang.UserRecord]'s ordered, struct-typed form by toUserRecord.
type wireUser struct {
	Profile struct {
		Demographics     map[string]any `json:"demographics"     yaml:"demographics"`
		FirstReferral    string         `json:"first_referral"   yaml:"first_referral"`
		CustomProperties map[string]any `json:"custom_properties" yaml:"custom_properties"`
	} `json:"profile" yaml:"profile"`

	Visits []struct {
		ID          string         `json:"id"           yaml:"id"`
		LandingPage string         `json:"landing_page" yaml:"landing_page"`
		Referrer    string         `json:"referrer"     yaml:"referrer"`
		Device      string         `json:"device"       yaml:"device"`
		Browser     string         `json:"browser"      yaml:"browser"`
		OS          string         `json:"os"           yaml:"os"`
		Duration    float64        `json:"duration"     yaml:"duration"`
		Timestamp   string         `json:"timestamp"    yaml:"timestamp"`
		Fields      map[string]any `json:"fields"        yaml:"fields"`
	} `json:"visits" yaml:"visits"`

	Events []struct {
		EventName  string         `json:"event_name" yaml:"event_name"`
		EventType  string         `json:"event_type" yaml:"event_type"`
		Timestamp  string         `json:"timestamp"  yaml:"timestamp"`
		Parameters map[string]any `json:"parameters" yaml:"parameters"`
		Fields     map[string]any `json:"fields"     yaml:"fields"`
	} `json:"events" yaml:"events"`
}

// decodeUser reads a user record from r, sniffing its first non-space
// byte: input starting with '{' is parsed as JSON, anything else as YAML.
// A JSON parse failure is returned as is; it does not fall back to YAML.
func decodeUser(r io.Reader) (*lang.UserRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var w wireUser

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
	} else if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}

	return w.toUserRecord(), nil
}

func (w *wireUser) toUserRecord() *lang.UserRecord {
	visits := lang.NewOrderedMap[string, lang.Visit]()

	for _, v := range w.Visits {
		visits.Set(v.ID, lang.Visit{
			ID:          v.ID,
			LandingPage: v.LandingPage,
			Referrer:    v.Referrer,
			Device:      v.Device,
			Browser:     v.Browser,
			OS:          v.OS,
			Duration:    v.Duration,
			Timestamp:   v.Timestamp,
			Fields:      v.Fields,
		})
	}

	events := make(lang.OrderedSequence[lang.Event], 0, len(w.Events))

	for _, e := range w.Events {
		events = append(events, lang.Event{
			EventName:  e.EventName,
			EventType:  e.EventType,
			Timestamp:  e.Timestamp,
			Parameters: e.Parameters,
			Fields:     e.Fields,
		})
	}

	return &lang.UserRecord{
		Profile: lang.Profile{
			Demographics:     w.Profile.Demographics,
			FirstReferral:    w.Profile.FirstReferral,
			CustomProperties: w.Profile.CustomProperties,
		},
		Visits: visits,
		Events: events,
	}
}
