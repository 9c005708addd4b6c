// Copyright 2016, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"os"
	"strconv"
)

// Environment variables
const (
	SENTINEL_HOST = "SENTINEL_HOST"
	S2_TOLERANCE  = "S2_TOLERANCE"
	VCAP_SERVICES = "VCAP_SERVICES"
)

const defaultTolerance = 0.0001

// GetSentinelHost returns the host URL to use as a default base for image
// asset hrefs, from the SENTINEL_HOST environment variable or the bound
// "sentinel2" VCAP service
func GetSentinelHost() string {
	sentinelHost, ok := os.LookupEnv(SENTINEL_HOST)
	if ok {
		return sentinelHost
	}
	if host, err := vcapSentinelHost(); err == nil {
		return host
	}
	LogInfo(&BasicLogContext{}, "Did not get Sentinel host URL from the environment. Asset hrefs will use the granule href as their base.")
	return ""
}

// GetDefaultTolerance returns the geometry simplification tolerance from the
// S2_TOLERANCE environment variable, or a conservative default
func GetDefaultTolerance() float64 {
	toleranceStr, ok := os.LookupEnv(S2_TOLERANCE)
	if !ok {
		return defaultTolerance
	}
	tolerance, err := strconv.ParseFloat(toleranceStr, 64)
	if err != nil {
		LogAlert(&BasicLogContext{}, "Could not parse "+S2_TOLERANCE+" as a float: "+toleranceStr)
		return defaultTolerance
	}
	return tolerance
}

func vcapSentinelHost() (string, error) {
	services, err := ParseVcapServices([]byte(os.Getenv(VCAP_SERVICES)))
	if err != nil {
		return "", err
	}
	service := services.FindServiceByName("sentinel2")
	if service == nil {
		return "", errNoVcapService
	}
	return service.Credentials.String("host")
}
