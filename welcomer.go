package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/callummance/welcomer/bot"
	"github.com/joho/godotenv"
	"github.com/prometheus/common/version"
	"github.com/sirupsen/logrus"
)

const logLevelEnvVar string = "WELCOMER_LOG_LEVEL"

func main() {
	err := godotenv.Load()
	if err != nil {
		logrus.Warnf("Failed to load .env file due to error %v", err)
	}
	configureLogging()
	logrus.Infof("Starting welcomer %v %v", version.Info(), version.BuildContext())

	bot, err := bot.Init()
	if err != nil {
		logrus.Fatalf("Failed to start discord bot: %v", err)
	}
	logrus.Infof("Bot is now running. Press ^+C to exit.")
	addURL, err := bot.BotAddURL()
	if err != nil {
		logrus.Errorf("Failed to generate bot add URL due to error %v", err)
	} else {
		logrus.Infof("Go to `%v` to add bot to your server", addURL)
	}
	closeChan := make(chan os.Signal, 1)
	signal.Notify(closeChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-closeChan

	bot.Close()
	fmt.Println("Goodbye!")
}

func configureLogging() {
	levelStr, exists := os.LookupEnv(logLevelEnvVar)
	if !exists {
		return
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		logrus.Warnf("Invalid log level `%v`, keeping %v", levelStr, logrus.GetLevel())
		return
	}
	logrus.SetLevel(level)
}
