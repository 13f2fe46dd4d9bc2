package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"countryclick/backend/countries"
	"countryclick/backend/geocode"
	"countryclick/backend/lookup"
)

func test_countries(name string) {
	rc := countries.NewRestCountries(os.Getenv("RESTCOUNTRIES_URL"), 10*time.Second)

	info, err := rc.LookupCountry(context.Background(), name)
	if err != nil {
		log.Fatal("呼叫 REST Countries 失敗:", err)
	}

	fmt.Println("=== REST Countries 測試成功 ===")
	printCountry(info)
}

func test_click(c lookup.Coordinate) {
	g, err := geocode.NewGoogle(geocode.GoogleConfig{APIKey: os.Getenv("GOOGLE_MAPS_API_KEY")})
	if err != nil {
		log.Fatal("建立 Google client 失敗:", err)
	}
	o := lookup.NewOrchestrator(g, countries.NewRestCountries(os.Getenv("RESTCOUNTRIES_URL"), 10*time.Second))

	st := o.HandleClick(context.Background(), c)
	fmt.Printf("=== 點擊 %v → %s ===\n", c, st.Phase)
	switch st.Phase {
	case lookup.PhaseError:
		fmt.Println("錯誤：", st.Message)
	case lookup.PhaseResult:
		printCountry(*st.Country)
	}
}

func printCountry(info lookup.CountryInfo) {
	fmt.Println("國家：", info.Country)
	fmt.Println("國旗：", info.Flag)
	fmt.Println("人口：", info.Population)
	fmt.Println("說明：", info.FlagDescription)
}
