/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Ajaxtable Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package demo

import (
	"fmt"
	"time"
)

// Record is one row served by the demo API.
type Record map[string]any

// NumOrders is the size of the orders dataset.
const NumOrders = 95

var demoRegions = []struct {
	region     string
	name       string
	continent  string
	capital    string
	population int
}{
	{"us-east", "US East", "Americas", "Washington", 91_000_000},
	{"us-west", "US West", "Americas", "Sacramento", 78_000_000},
	{"us-central", "US Central", "Americas", "Chicago", 67_000_000},
	{"europe-west", "Europe West", "Europe", "Brussels", 196_000_000},
	{"europe-north", "Europe North", "Europe", "Stockholm", 32_000_000},
	{"asia-east", "Asia East", "Asia-Pacific", "Taipei", 1_600_000_000},
	{"asia-south", "Asia South", "Asia-Pacific", "Mumbai", 1_900_000_000},
	{"asia-northeast", "Asia Northeast", "Asia-Pacific", "Tokyo", 205_000_000},
}

var (
	demoCustomers = []string{"Acme Corp", "Globex", "Initech", "Umbrella", "Hooli", "Stark Industries", "Wayne Enterprises", "Soylent"}
	demoStatuses  = []string{"pending", "completed", "cancelled", "processing"}
	demoCategory  = []string{"hardware", "software", "services", "training"}
)

var ordersEpoch = time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)

// Orders returns the orders dataset. Values are derived from the row index
// so every call returns the same data.
func Orders() []Record {
	out := make([]Record, 0, NumOrders)
	for i := 0; i < NumOrders; i++ {
		created := ordersEpoch.Add(time.Duration(i*7) * time.Hour).Add(time.Duration(i%4*15) * time.Minute)
		minutes := (i * 37) % 600
		out = append(out, Record{
			"id":       1000 + i,
			"customer": demoCustomers[i%len(demoCustomers)],
			"region":   demoRegions[i%len(demoRegions)].region,
			"category": demoCategory[(i/3)%len(demoCategory)],
			"status":   demoStatuses[(i*5)%len(demoStatuses)],
			// Amounts are strings, as many APIs send money.
			"amount":   fmt.Sprintf("%d.%02d", 50+(i*173)%4950, (i*29)%100),
			"quantity": 1 + (i*3)%12,
			"duration": fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60),
			"created":  created.Format("2006-01-02 15:04:05"),
			"shipping": Record{"carrier": []string{"UPS", "DHL", "FedEx"}[i%3], "days": 1 + i%5},
		})
	}
	return out
}

// Regions returns the regions dataset.
func Regions() []Record {
	out := make([]Record, 0, len(demoRegions))
	for _, r := range demoRegions {
		out = append(out, Record{
			"region":     r.region,
			"name":       r.name,
			"continent":  r.continent,
			"capital":    r.capital,
			"population": r.population,
		})
	}
	return out
}

// Datasets returns every demo dataset by name.
func Datasets() map[string][]Record {
	return map[string][]Record{
		"orders":  Orders(),
		"regions": Regions(),
	}
}
