package global

import (
	"log"

	"github.com/jinzhu/gorm"
	"github.com/snowie2000/hdhomerun/model"
	"github.com/snowie2000/hdhomerun/util"
	_ "modernc.org/sqlite"
)

var DB *gorm.DB

func InitDB(filepath string) (err error) {
	ConfigCache.Clear()
	LineupCache.Flush()
	M3UCache.Flush()
	DB, err = gorm.Open("sqlite", filepath)
	if err != nil {
		return err
	}
	err = DB.AutoMigrate(&model.Config{}, &model.Channel{}).Error
	if err != nil {
		return err
	}

	for key, valueDefault := range defaultConfigValue {
		var valueInDB model.Config
		err = DB.Where("name = ?", key).First(&valueInDB).Error
		if err != nil {
			if gorm.IsRecordNotFoundError(err) {
				ConfigCache.Store(key, valueDefault)
			} else {
				return err
			}
		} else {
			ConfigCache.Store(key, valueInDB.Data)
		}
	}

	// the api key is only meaningful once it is unguessable
	if key, _ := GetConfig("auth_apikey"); key == "" {
		if err = SetConfig("auth_apikey", util.RandString(24)); err != nil {
			return err
		}
		log.Println("generated a new api key")
	}
	return nil
}

func CloseDB() error {
	if DB == nil {
		return nil
	}
	return DB.Close()
}

func init() {
	// use sqlite3 dialect for sqlite
	if dialect, ok := gorm.GetDialect("sqlite3"); ok {
		gorm.RegisterDialect("sqlite", dialect)
	}
}
