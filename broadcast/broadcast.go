// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/songquiz/logger"
	"github.com/wfunc/songquiz/session"
)

var (
	ErrGuildNotFound = errors.New("no connection joined this guild")
)

// 广播接口
type Broadcaster interface {
	BroadcastToGuild(guildID string, msgID uint16, data []byte) error
	BroadcastToAll(msgID uint16, data []byte) error
	BroadcastToPlayers(playerIDs []string, msgID uint16, data []byte) error
}

// 基于公会的广播器，按连接绑定的公会分发消息
type GuildBroadcaster struct {
	sessionManager *session.Manager
}

func NewGuildBroadcaster(sessionManager *session.Manager) *GuildBroadcaster {
	return &GuildBroadcaster{
		sessionManager: sessionManager,
	}
}

func (b *GuildBroadcaster) BroadcastToGuild(guildID string, msgID uint16, data []byte) error {
	sessions := b.sessionManager.GetByGuild(guildID)
	if len(sessions) == 0 {
		return ErrGuildNotFound
	}
	b.sendAll(sessions, msgID, data)
	return nil
}

func (b *GuildBroadcaster) BroadcastToAll(msgID uint16, data []byte) error {
	b.sendAll(b.sessionManager.All(), msgID, data)
	return nil
}

func (b *GuildBroadcaster) BroadcastToPlayers(playerIDs []string, msgID uint16, data []byte) error {
	for _, playerID := range playerIDs {
		b.sendAll(b.sessionManager.GetByPlayerID(playerID), msgID, data)
	}
	return nil
}

func (b *GuildBroadcaster) sendAll(sessions []*session.Session, msgID uint16, data []byte) {
	for _, s := range sessions {
		if err := s.Send(msgID, data); err != nil {
			// 发送失败的连接由读循环负责清理
			logger.Log.Debugf("broadcast %d to session %s failed: %v", msgID, s.ID, err)
		}
	}
}
