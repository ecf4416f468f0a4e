package entity

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
)

var worldBound = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// GeoPoint coordenada capturada por el dispositivo del reponedor.
// Se conserva el texto decimal original para no perder precisión al persistir "lat,lng".
type GeoPoint struct {
	lat decimal.Decimal
	lng decimal.Decimal
}

// ParseGeoPoint interpreta latitud y longitud como decimales dentro del rango terrestre.
func ParseGeoPoint(lat, lng string) (GeoPoint, error) {
	la, err := decimal.NewFromString(strings.TrimSpace(lat))
	if err != nil {
		return GeoPoint{}, fmt.Errorf("latitud inválida: %q", lat)
	}
	lo, err := decimal.NewFromString(strings.TrimSpace(lng))
	if err != nil {
		return GeoPoint{}, fmt.Errorf("longitud inválida: %q", lng)
	}
	p := GeoPoint{lat: la, lng: lo}
	if !worldBound.Contains(p.Point()) {
		return GeoPoint{}, fmt.Errorf("coordenadas fuera de rango: %s", p)
	}
	return p, nil
}

// NewGeoPoint construye el punto desde columnas NUMERIC ya validadas en la escritura.
func NewGeoPoint(lat, lng decimal.Decimal) GeoPoint {
	return GeoPoint{lat: lat, lng: lng}
}

// Lat latitud exacta.
func (p GeoPoint) Lat() decimal.Decimal { return p.lat }

// Lng longitud exacta.
func (p GeoPoint) Lng() decimal.Decimal { return p.lng }

// Point devuelve la coordenada como orb.Point (lng, lat).
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.lng.InexactFloat64(), p.lat.InexactFloat64()}
}

// String formato persistido "lat,lng".
func (p GeoPoint) String() string {
	return p.lat.String() + "," + p.lng.String()
}
