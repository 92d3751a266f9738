package utils

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

func PrettyJson(in any) string {
	if raw, ok := in.([]byte); ok {
		var decoded any
		if err := jsoniter.Unmarshal(raw, &decoded); err != nil {
			return string(raw)
		}
		in = decoded
	}

	buffer, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(in, "", "\t")
	if err != nil {
		return fmt.Sprintf("%v", in)
	}

	return string(buffer)
}
