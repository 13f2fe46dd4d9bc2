// test_api 直接打真實的第三方 API，確認 key 與回應格式
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"countryclick/backend/lookup"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println("用法:")
		fmt.Println("  go run ./test_api google LAT LNG      # 測 Google 反向地理編碼")
		fmt.Println("  go run ./test_api nominatim LAT LNG   # 測 Nominatim 反向地理編碼")
		fmt.Println("  go run ./test_api countries NAME      # 測 REST Countries 國家資料")
		fmt.Println("  go run ./test_api click LAT LNG       # 整段流程 (Google + REST Countries)")
		return
	}

	switch os.Args[1] {
	case "google":
		test_google(coordinateArg())
	case "nominatim":
		test_nominatim(coordinateArg())
	case "countries":
		if len(os.Args) < 3 {
			log.Fatal("缺少國家名稱")
		}
		test_countries(os.Args[2])
	case "click":
		test_click(coordinateArg())
	default:
		log.Fatalf("未知指令: %s\n", os.Args[1])
	}
}

// coordinateArg 沒給座標就用地圖預設中心
func coordinateArg() lookup.Coordinate {
	if len(os.Args) < 4 {
		return lookup.DefaultCenter
	}
	lat, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		log.Fatal("緯度格式錯誤:", err)
	}
	lng, err := strconv.ParseFloat(os.Args[3], 64)
	if err != nil {
		log.Fatal("經度格式錯誤:", err)
	}
	c, err := lookup.Coordinate{Lat: lat, Lng: lng}.Normalize()
	if err != nil {
		log.Fatal(err)
	}
	return c
}
