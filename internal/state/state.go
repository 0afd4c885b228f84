package state

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"hash/crc32"
	"os"
	"path/filepath"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/vinser/descent/internal/sound"
)

// State holds the preview settings and the seeds of visited depths.
type State struct {
	Width       int           `json:"width"`         // Grid width in cells
	Height      int           `json:"height"`        // Grid height in cells
	StepsPerRow int           `json:"steps_per_row"` // Walk budget per row, 0 for the generator default
	SpriteSize  string        `json:"sprite_size"`   // Sprite size: small, medium, large
	Mute        bool          `json:"mute"`          // Mute all sounds
	Volume      float64       `json:"volume"`        // Master volume, 0 is full and each step down halves it
	LevelSeeds  map[int]int64 `json:"level_seeds"`   // Seed for each depth to reproduce the same layouts

	SoundManager *sound.Manager `json:"-"`
}

const (
	// Sprite sizes
	SpriteSmall   = "small"
	SpriteMedium  = "medium"
	SpriteLarge   = "large"
	SpriteDefault = SpriteMedium

	// Grid size
	DefaultWidth  = 4
	DefaultHeight = 6
	MaxWidth      = 24
	MaxHeight     = 48

	// Master volume range
	MinVolume = -4.0
	MaxVolume = 0.0
)

const appName = "descent"

var encryptionKey = generateKey()

// generateKey creates a 32-byte AES key from system-specific data.
func generateKey() []byte {
	appID, err := machineid.ProtectedID(appName)
	if err != nil {
		appID = "default-descent-id" // Fallback if machine ID fails
	}
	sum := sha256.Sum256([]byte(appID))
	return sum[:]
}

// configDir is replaced in tests.
var configDir = os.UserConfigDir

// New returns the default state with a fresh seed for the surface level.
func New() *State {
	seeds := make(map[int]int64)
	seeds[0] = time.Now().UnixNano()
	return &State{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		SpriteSize: SpriteDefault,
		LevelSeeds: seeds,
	}
}

// Load reads the state from disk, decrypts and verifies it.
// Any failure yields the default state.
func Load() *State {
	path, err := getSavePath()
	if err != nil {
		return New()
	}

	encrypted, err := os.ReadFile(path)
	if err != nil {
		return New()
	}

	decrypted, err := decrypt(encrypted)
	if err != nil || len(decrypted) < 5 {
		return New()
	}

	crcStored := binary.LittleEndian.Uint32(decrypted[:4])
	payload := decrypted[4:]
	if crc32.ChecksumIEEE(payload) != crcStored {
		return New()
	}

	s := &State{}
	if err = json.Unmarshal(payload, s); err != nil {
		return New() // Corrupted JSON
	}
	s.normalize()
	return s
}

// normalize repairs values a hand-edited or older save may carry.
func (s *State) normalize() {
	if s.LevelSeeds == nil {
		s.LevelSeeds = make(map[int]int64)
	}
	s.Width = clamp(s.Width, 1, MaxWidth, DefaultWidth)
	s.Height = clamp(s.Height, 2, MaxHeight, DefaultHeight)
	switch s.SpriteSize {
	case SpriteSmall, SpriteMedium, SpriteLarge:
	default:
		s.SpriteSize = SpriteDefault
	}
	s.Volume = min(max(s.Volume, MinVolume), MaxVolume)
}

func clamp(v, lo, hi, def int) int {
	if v == 0 {
		return def
	}
	return min(max(v, lo), hi)
}

// InitSound creates the sound manager. If audio is unavailable the state is
// muted for this session, but the saved preference is kept.
func (s *State) InitSound() {
	soundMgr, err := sound.NewManager(sound.CommonSampleRate)
	if err != nil {
		s.SoundManager = nil
		return
	}
	s.SoundManager = soundMgr
	s.SetVolume(s.Volume)
	s.SetMute(s.Mute)
}

// SetVolume stores the master volume and applies it to the sound manager.
func (s *State) SetVolume(volume float64) {
	s.Volume = min(max(volume, MinVolume), MaxVolume)
	s.SoundManager.SetMasterVolume(s.Volume)
}

// SetMute toggles the mute state and applies it to the sound manager.
func (s *State) SetMute(mute bool) {
	s.Mute = mute
	if s.SoundManager == nil {
		return
	}
	if s.Mute {
		s.SoundManager.Mute()
	} else {
		s.SoundManager.Unmute()
	}
}

// SeedFor returns the seed of a depth, picking a new one the first time.
func (s *State) SeedFor(depth int) int64 {
	if s.LevelSeeds == nil {
		s.LevelSeeds = make(map[int]int64)
	}
	seed, ok := s.LevelSeeds[depth]
	if !ok || seed == 0 {
		seed = time.Now().UnixNano()
		s.LevelSeeds[depth] = seed
	}
	return seed
}

// Reseed replaces the seed of a depth and returns the new one.
func (s *State) Reseed(depth int) int64 {
	seed := time.Now().UnixNano()
	if old, ok := s.LevelSeeds[depth]; ok && old == seed {
		seed++
	}
	if s.LevelSeeds == nil {
		s.LevelSeeds = make(map[int]int64)
	}
	s.LevelSeeds[depth] = seed
	return seed
}

// Save persists the current state to an encrypted file with an integrity check.
func (s *State) Save() error {
	path, err := getSavePath()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	// Prepend CRC32 checksum
	crc := crc32.ChecksumIEEE(raw)
	data := make([]byte, 4+len(raw))
	binary.LittleEndian.PutUint32(data[:4], crc)
	copy(data[4:], raw)

	encrypted, err := encrypt(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, encrypted, 0644)
}

// ======================
// 🔐 AES Encryption
// ======================

func encrypt(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	return gcm.Open(nil, ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():], nil)
}

// getSavePath returns the path to the save file inside the user config directory.
func getSavePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	saveDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(saveDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(saveDir, "state.dat"), nil
}
