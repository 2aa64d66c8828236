package helper

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const trackingPrefix = "LCB"

// GenerateTrackingCode mints the order-reference string handed out once per
// reconciled payment: PREFIX-YYYYMMDD-XXXXXX, date in UTC, suffix 6 hex
// characters, all uppercase.
func GenerateTrackingCode() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back to
		// a time-derived suffix rather than handing out an empty code.
		return fmt.Sprintf("%s-%s-%06X", trackingPrefix, time.Now().UTC().Format("20060102"), time.Now().UnixNano()&0xFFFFFF)
	}
	suffix := strings.ToUpper(hex.EncodeToString(buf))
	return fmt.Sprintf("%s-%s-%s", trackingPrefix, time.Now().UTC().Format("20060102"), suffix)
}

// GenerateChefID mints a chef identifier of the form chef-NNNN.
func GenerateChefID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return fmt.Sprintf("chef-%04d", time.Now().UnixNano()%9000+1000)
	}
	return fmt.Sprintf("chef-%04d", n.Int64()+1000)
}
