package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"countryclick/backend/geocode"
	"countryclick/backend/lookup"
)

func test_google(c lookup.Coordinate) {
	g, err := geocode.NewGoogle(geocode.GoogleConfig{APIKey: os.Getenv("GOOGLE_MAPS_API_KEY")})
	if err != nil {
		log.Fatal("建立 Google client 失敗:", err)
	}
	printPlace("Google", g, c)
}

func test_nominatim(c lookup.Coordinate) {
	// Nominatim 官方要求一定要有 User-Agent
	ua := os.Getenv("NOMINATIM_USER_AGENT")
	if ua == "" {
		ua = "country-click-tester/1.0"
	}
	n, err := geocode.NewNominatim(geocode.NominatimConfig{UserAgent: ua})
	if err != nil {
		log.Fatal("建立 Nominatim client 失敗:", err)
	}
	printPlace("Nominatim", n, c)
}

func printPlace(name string, g lookup.Geocoder, c lookup.Coordinate) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	place, err := g.ReverseGeocode(ctx, c)
	if err != nil {
		log.Fatalf("呼叫 %s 失敗: %v", name, err)
	}

	fmt.Printf("=== %s 測試成功 ===\n", name)
	fmt.Println("座標：", c)
	if place.Country == "" {
		fmt.Println("這個位置沒有國家")
		return
	}
	fmt.Println("國家：", place.Country)
	fmt.Println("代碼：", place.CountryCode)
}
