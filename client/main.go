package main

import (
	"bufio"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wfunc/songquiz/models"
	"github.com/wfunc/songquiz/network"
)

// send encodes payload and writes it as one packet.
func send(c *websocket.Conn, msgID uint16, payload any) error {
	var data []byte
	if payload != nil {
		var err error
		if data, err = network.Encode(payload); err != nil {
			return err
		}
	}
	packet, err := network.EncodePacket(msgID, data)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func main() {
	addr := flag.String("addr", "localhost:8080", "game server address")
	guild := flag.String("guild", "guild-1", "guild to play in")
	player := flag.String("player", "player-1", "player id")
	name := flag.String("name", "Player", "display name")
	mode := flag.String("mode", string(models.GameTypeClassic), "classic, elimination or teams")
	team := flag.String("team", "", "team name in teams mode")
	join := flag.Bool("join", false, "join an existing game instead of starting one")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			packet, err := network.DecodePacket(message)
			if err != nil {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			log.Printf("<- RECV (ID: %d): %s", packet.MsgID, string(packet.Data))
		}
	}()

	info := network.PlayerInfo{PlayerID: *player, Name: *name, TeamName: *team}
	if *join {
		log.Printf("Joining game in %s...", *guild)
		err = send(c, network.MsgTypeJoinGame, network.JoinGameRequest{GuildID: *guild, Player: info})
	} else {
		log.Printf("Starting a %s game in %s...", *mode, *guild)
		err = send(c, network.MsgTypeStartGame, network.StartGameRequest{
			GuildID:  *guild,
			GameType: models.GameType(*mode),
			Player:   info,
		})
	}
	if err != nil {
		log.Println("Write error:", err)
		return
	}

	log.Println("Type a guess and press Enter. Commands: /skip, /hint, /leave, /end")

	lines := make(chan string)
	go func() {
		reader := bufio.NewScanner(os.Stdin)
		for reader.Scan() {
			lines <- strings.TrimSpace(reader.Text())
		}
	}()

	// Write loop
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		case text := <-lines:
			if text == "" {
				continue
			}
			switch text {
			case "/skip":
				err = send(c, network.MsgTypeSkip, nil)
			case "/hint":
				err = send(c, network.MsgTypeHint, nil)
			case "/leave":
				err = send(c, network.MsgTypeLeaveGame, nil)
			case "/end":
				err = send(c, network.MsgTypeEndGame, nil)
			default:
				err = send(c, network.MsgTypeGuess, network.GuessRequest{Text: text})
			}
			if err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT: %s", text)
		}
	}
}
