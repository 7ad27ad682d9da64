package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// MinIOClient stocke les documents officiels générés (artefacts PDF).
// Les clés d'objet sont adressées par contenu: le même document produit
// toujours la même clé, l'appelant ne manipule qu'un identifiant opaque.
type MinIOClient struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOClient crée le client et le bucket s'il n'existe pas
func NewMinIOClient(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", bucketName)
	}

	return &MinIOClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// DocumentKey calcule la clé adressée par contenu d'un document
func DocumentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return "doc_" + hex.EncodeToString(sum[:16]) + ".pdf"
}

// StoreDocument enregistre un document PDF et retourne sa clé d'artefact
func (m *MinIOClient) StoreDocument(ctx context.Context, data []byte) (string, error) {
	key := DocumentKey(data)

	reader := bytes.NewReader(data)
	_, err := m.client.PutObject(ctx, m.bucketName, key, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("failed to store document: %w", err)
	}

	logrus.Infof("Document %s stored successfully", key)
	return key, nil
}

// FetchDocument récupère un document par sa clé
func (m *MinIOClient) FetchDocument(ctx context.Context, key string) ([]byte, error) {
	object, err := m.client.GetObject(ctx, m.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return data, nil
}

// DeleteDocument supprime un document
func (m *MinIOClient) DeleteDocument(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	logrus.Infof("Document %s deleted successfully", key)
	return nil
}

// DocumentExists vérifie la présence d'un document
func (m *MinIOClient) DocumentExists(ctx context.Context, key string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check document: %w", err)
	}

	return true, nil
}
