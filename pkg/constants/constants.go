package constants

import "time"

const (
	CHANNEL_SIZE        = 100                // 通道缓冲大小（事件通道/chat 事件流）
	SESSION_EXPIRY      = 7 * 24 * time.Hour // 会话有效期：7 天
	MOCK_WORD_DELAY     = 50 * time.Millisecond
	ATTACHMENT_MAX_SIZE = 50000 // 附件 Base64 最大长度

	// KV 存储命名空间
	// 四个命名空间各自整体序列化读写，不做局部更新
	KV_KEY_ACCOUNTS     = "campus:accounts"
	KV_KEY_COMPLAINTS   = "campus:complaints"
	KV_KEY_SESSION      = "campus:session"
	KV_KEY_CURRENT_USER = "campus:current_user"
)
