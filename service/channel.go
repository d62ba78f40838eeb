package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	"github.com/snowie2000/hdhomerun/global"
	"github.com/snowie2000/hdhomerun/model"
)

var ErrChannelNotFound = errors.New("channel not found")

// GetAllChannel lists channels by channel number. With onlyUse set, disabled
// channels are left out.
func GetAllChannel(onlyUse bool) (channels []model.Channel, err error) {
	db := global.DB.Order("ch_number asc").Order("id asc")
	if onlyUse {
		db = db.Where("in_use = ?", true)
	}
	err = db.Find(&channels).Error
	if err == nil && channels == nil {
		channels = []model.Channel{}
	}
	return
}

func GetChannel(id uint) (channel model.Channel, err error) {
	err = global.DB.Where("id = ?", id).First(&channel).Error
	if gorm.IsRecordNotFoundError(err) {
		err = fmt.Errorf("%w: %d", ErrChannelNotFound, id)
	}
	return
}

// SaveChannel writes channel and drops the cached playlist once the row is stored.
func SaveChannel(channel *model.Channel) error {
	if err := global.DB.Save(channel).Error; err != nil {
		return err
	}
	global.M3UCache.Flush()
	return nil
}

// DeleteChannel reports whether a row was removed.
func DeleteChannel(id uint) (bool, error) {
	res := global.DB.Delete(model.Channel{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	global.M3UCache.Flush()
	return res.RowsAffected > 0, nil
}

// MatchForEpgName sets the EPG lookup name of a channel.
func MatchForEpgName(id uint, name string) (model.Channel, error) {
	channel, err := GetChannel(id)
	if err != nil {
		return channel, err
	}
	channel.ForEpgName = name
	if err = SaveChannel(&channel); err != nil {
		return channel, err
	}
	return channel, nil
}

func nextChannelNumber() (int, error) {
	var row struct{ Max int }
	err := global.DB.Model(&model.Channel{}).Select("COALESCE(MAX(ch_number), 0) AS max").Scan(&row).Error
	return row.Max + 1, err
}

// AllGroups lists the distinct non-empty channel groups.
func AllGroups() ([]string, error) {
	var channels []model.Channel
	err := global.DB.Select("group_name").Group("group_name").Order("group_name").Find(&channels).Error
	if err != nil {
		return nil, err
	}
	groups := make([]string, 0, len(channels))
	for _, v := range channels {
		if g := strings.TrimSpace(v.GroupName); g != "" {
			groups = append(groups, g)
		}
	}
	return groups, nil
}
