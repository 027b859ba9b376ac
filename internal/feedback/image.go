package feedback

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

var ErrUnknownOutcome = fmt.Errorf("未知的预测结果类型")

const (
	DefaultAssetDir     = "."
	DefaultPassImageURL = "https://zjjcmspublic.oss-cn-hangzhou-zwynet-d01-a.internet.cloud.zj.gov.cn/jcms_files/jcms1/web2208/site/picture/0/s4dbef854f7df48569a904af14df9d0c8.png"
	DefaultFailImageURL = "https://bpic.588ku.com/element_origin_min_pic/21/09/05/07841ac5d51073b5c7ac829f9f03a77b.jpg"
	DefaultFetchTimeout = 10 * time.Second
	PassImageFile       = "congrats.png"
	FailImageFile       = "encourage.png"
)

// maxImageSize 远程图片的最大字节数
const maxImageSize = 10 << 20

type ImageSource string

const (
	SourceLocal  = ImageSource("local")
	SourceRemote = ImageSource("remote")
)

type Image struct {
	ContentType string
	Data        []byte
	Source      ImageSource
}

type ResolverConfig struct {
	AssetDir     string
	PassImageURL string
	FailImageURL string
	Timeout      time.Duration
}

// ImageResolver 优先读取本地图片，不存在时从网络获取，不重试
type ImageResolver struct {
	config *ResolverConfig
	client *http.Client
	logger *log.Logger
}

func NewImageResolver(config *ResolverConfig) *ImageResolver {
	c := *config
	if c.AssetDir == "" {
		c.AssetDir = DefaultAssetDir
	}
	if c.PassImageURL == "" {
		c.PassImageURL = DefaultPassImageURL
	}
	if c.FailImageURL == "" {
		c.FailImageURL = DefaultFailImageURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultFetchTimeout
	}
	return &ImageResolver{
		config: &c,
		client: &http.Client{Timeout: c.Timeout},
		logger: log.New(os.Stdout, "image: ", log.LstdFlags|log.Lshortfile|log.Lmsgprefix),
	}
}

func (r *ImageResolver) Resolve(ctx context.Context, outcome Outcome) (*Image, error) {
	var file, url string
	switch outcome {
	case Pass:
		file, url = PassImageFile, r.config.PassImageURL
	case Fail:
		file, url = FailImageFile, r.config.FailImageURL
	default:
		return nil, errors.Wrap(ErrUnknownOutcome, string(outcome))
	}

	data, err := os.ReadFile(filepath.Join(r.config.AssetDir, file))
	if err == nil {
		return &Image{ContentType: http.DetectContentType(data), Data: data, Source: SourceLocal}, nil
	}
	if !os.IsNotExist(err) {
		r.logger.Printf("读取本地图片%s失败：%v，改为从网络获取\n", file, err)
	}
	return r.fetch(ctx, url)
}

func (r *ImageResolver) fetch(ctx context.Context, url string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "创建请求失败")
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("获取图片%s失败", url))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("获取图片%s失败，状态码%d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, errors.Wrap(err, "读取图片失败")
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &Image{ContentType: contentType, Data: data, Source: SourceRemote}, nil
}
