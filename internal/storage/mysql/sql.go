package mysql

const createReviewsSQL = `
CREATE TABLE IF NOT EXISTS reviews (
  app_id      VARCHAR(32)  NOT NULL,
  review_id   VARCHAR(64)  NOT NULL,
  author      VARCHAR(255) NOT NULL DEFAULT '',
  version     VARCHAR(64)  NOT NULL DEFAULT '',
  rating      TINYINT      NOT NULL,
  title       TEXT         NULL,
  content     MEDIUMTEXT   NULL,
  vote_count  INT          NOT NULL DEFAULT 0,
  vote_sum    INT          NOT NULL DEFAULT 0,
  reviewed_at DATETIME     NOT NULL,
  country     CHAR(2)      NOT NULL,
  PRIMARY KEY (app_id, review_id),
  KEY idx_reviews_app_country (app_id, country),
  KEY idx_reviews_app_date (app_id, reviewed_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const createMissesSQL = `
CREATE TABLE IF NOT EXISTS fetch_misses (
  id        BIGINT AUTO_INCREMENT PRIMARY KEY,
  app_id    VARCHAR(32) NOT NULL,
  country   CHAR(2)     NOT NULL,
  reason    VARCHAR(255) NOT NULL,
  logged_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP,
  KEY idx_misses_app (app_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const insertReviewsPrefix = `
INSERT INTO reviews
  (app_id, review_id, author, version, rating, title, content, vote_count, vote_sum, reviewed_at, country)
VALUES `

const insertReviewsOnDup = `
ON DUPLICATE KEY UPDATE
  author=VALUES(author), version=VALUES(version), rating=VALUES(rating),
  title=VALUES(title), content=VALUES(content),
  vote_count=VALUES(vote_count), vote_sum=VALUES(vote_sum),
  reviewed_at=VALUES(reviewed_at), country=VALUES(country)`

const insertMissSQL = `INSERT INTO fetch_misses (app_id, country, reason) VALUES (?,?,?)`
