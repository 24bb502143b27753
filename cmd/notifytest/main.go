// Package main provides a smoke testing tool for the notification
// WebSocket stream. It mints tokens locally, so the server and this
// tool must share the same JWT secret.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

type metrics struct {
	connectionsAttempted int64
	connectionsSuccess   int64
	connectionsFailed    int64
	messagesReceived     int64
}

var m metrics

func main() {
	host := flag.String("host", "localhost:8480", "API server host")
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "JWT secret shared with the server")
	firstUser := flag.Uint("first-user", 1, "First user ID to connect as")
	clients := flag.Int("clients", 10, "Number of concurrent clients (consecutive user IDs)")
	duration := flag.Duration("duration", 30*time.Second, "Test duration")
	flag.Parse()

	if *secret == "" {
		log.Fatal("JWT secret required (flag -secret or env JWT_SECRET)")
	}

	log.Printf("Starting notification stream test against %s with %d clients", *host, *clients)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	stopChan := make(chan struct{})

	for i := 0; i < *clients; i++ {
		userID := *firstUser + uint(i)
		token, err := mintToken(*secret, userID)
		if err != nil {
			log.Fatalf("Token minting failed: %v", err)
		}
		wg.Add(1)
		go runClient(*host, token, userID, stopChan, &wg)
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-time.After(*duration):
		log.Println("Test duration reached")
	case <-interrupt:
		log.Println("Interrupted")
	}

	close(stopChan)
	wg.Wait()
	printMetrics()
}

func mintToken(secret string, userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func runClient(host, token string, userID uint, stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	u := url.URL{
		Scheme:   "ws",
		Host:     host,
		Path:     "/ws/notifications",
		RawQuery: "token=" + url.QueryEscape(token),
	}

	atomic.AddInt64(&m.connectionsAttempted, 1)
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		atomic.AddInt64(&m.connectionsFailed, 1)
		log.Printf("User %d: dial failed: %v", userID, err)
		return
	}
	atomic.AddInt64(&m.connectionsSuccess, 1)
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}
			atomic.AddInt64(&m.messagesReceived, 1)
			log.Printf("User %d <- %s", userID, message)
		}
	}()

	select {
	case <-stop:
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	case <-done:
	}
}

func printMetrics() {
	fmt.Println("--- results ---")
	fmt.Printf("connections attempted: %d\n", atomic.LoadInt64(&m.connectionsAttempted))
	fmt.Printf("connections succeeded: %d\n", atomic.LoadInt64(&m.connectionsSuccess))
	fmt.Printf("connections failed:    %d\n", atomic.LoadInt64(&m.connectionsFailed))
	fmt.Printf("messages received:     %d\n", atomic.LoadInt64(&m.messagesReceived))
}
