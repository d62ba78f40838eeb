package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/snowie2000/hdhomerun/util"
)

var ErrEmptyPayload = errors.New("empty channel payload")

// SaveChannels applies a JSON array of channel edits as posted by the channel
// page. Each element carries an id and any of use, ch_number, group_name,
// for_epg_name, url and logo. Unknown ids are skipped.
func SaveChannels(payload string) error {
	if strings.TrimSpace(payload) == "" {
		return ErrEmptyPayload
	}
	var applyErr error
	_, err := jsonparser.ArrayEach([]byte(payload), func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if applyErr != nil {
			return
		}
		if err != nil {
			applyErr = err
			return
		}
		if dataType != jsonparser.Object {
			applyErr = fmt.Errorf("channel edit at offset %d is not an object", offset)
			return
		}
		applyErr = applyEdit(value)
	})
	if err != nil {
		return fmt.Errorf("parse channel payload: %w", err)
	}
	return applyErr
}

func applyEdit(value []byte) error {
	id, ok := intField(value, "id")
	if !ok || id <= 0 {
		return errors.New("channel edit without a valid id")
	}
	ch, err := GetChannel(uint(id))
	if errors.Is(err, ErrChannelNotFound) {
		log.Println("[save] skip unknown channel", id)
		return nil
	}
	if err != nil {
		return err
	}
	if use, ok := boolField(value, "use"); ok {
		ch.Use = use
	}
	if n, ok := intField(value, "ch_number"); ok {
		ch.ChNumber = n
	}
	if s, err := jsonparser.GetString(value, "group_name"); err == nil {
		ch.GroupName = strings.TrimSpace(s)
	}
	if s, err := jsonparser.GetString(value, "for_epg_name"); err == nil {
		ch.ForEpgName = strings.TrimSpace(s)
	}
	if s, err := jsonparser.GetString(value, "url"); err == nil && s != "" {
		ch.URL = strings.TrimSpace(s)
	}
	if s, err := jsonparser.GetString(value, "logo"); err == nil {
		ch.Logo = strings.TrimSpace(s)
	}
	return SaveChannel(&ch)
}

// intField reads numbers and numeric strings alike.
func intField(data []byte, key string) (int, bool) {
	v, dataType, _, err := jsonparser.Get(data, key)
	if err != nil {
		return 0, false
	}
	switch dataType {
	case jsonparser.Number:
		n, err := jsonparser.ParseInt(v)
		return int(n), err == nil
	case jsonparser.String:
		return util.String2Int(string(v))
	}
	return 0, false
}

func boolField(data []byte, key string) (bool, bool) {
	v, dataType, _, err := jsonparser.Get(data, key)
	if err != nil {
		return false, false
	}
	switch dataType {
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(v)
		return b, err == nil
	case jsonparser.String:
		return util.ParseBool(string(v)), true
	case jsonparser.Number:
		return string(v) != "0", true
	}
	return false, false
}
