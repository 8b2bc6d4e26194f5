package cash

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/coin"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/orm"
)

// BucketName is where we store the balances.
const BucketName = "cash"

// Wallet holds all coins owned by a single address. The address is the key
// the wallet is stored under.
type Wallet struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Coins    []*coin.Coin    `protobuf:"bytes,2,rep,name=coins,proto3" json:"coins,omitempty"`
}

var _ orm.Model = (*Wallet)(nil)

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Validate requires all coins to be in normalized form.
func (m *Wallet) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return errors.Wrap(coin.Coins(m.Coins).Validate(), "coins")
}

// NewWalletBucket returns a bucket storing wallets by owner address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
